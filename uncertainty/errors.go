// SPDX-License-Identifier: MIT

package uncertainty

import "errors"

// Sentinel errors. Functions wrap them with the operation and the source
// (path, line, byte offset) via fmt.Errorf("...: %w", ErrX); match with errors.Is.
var (
	// ErrOpen indicates that a table file could not be opened. The underlying
	// os error is wrapped alongside, so errors.Is(err, fs.ErrNotExist) also works.
	ErrOpen = errors.New("uncertainty: cannot open table")

	// ErrParse indicates a structural or type mismatch while decoding any
	// of the three encodings.
	ErrParse = errors.New("uncertainty: malformed table")

	// ErrWrite indicates a failure while encoding or writing a table.
	ErrWrite = errors.New("uncertainty: cannot write table")

	// ErrInvalidGrid indicates that arrays passed to FromValues violate the
	// grid invariants (shape, ordering, finiteness).
	ErrInvalidGrid = errors.New("uncertainty: invalid grid")

	// ErrDimensionMismatch indicates batch query slices of different lengths.
	ErrDimensionMismatch = errors.New("uncertainty: distance and depth counts differ")
)
