// SPDX-License-Identifier: MIT

package phase

import "errors"

var (
	// ErrUnknownPhase is returned by ParsePhase for a name outside the phase table.
	ErrUnknownPhase = errors.New("phase: unknown phase name")

	// ErrUnknownAttribute is returned by ParseAttribute for a name outside the attribute table.
	ErrUnknownAttribute = errors.New("phase: unknown attribute name")
)
