// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: Row returns an error instead of panicking.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) on ingestion.
//
// Complexity quicksheet:
//   - FromRows: O(r*c); Row: O(1); Clone, Scale, EqualApprox: O(r*c).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ---------- error context tags ----------

const (
	ctxRow     = "Row"      // method tag used in error wrappers
	ctxFromRow = "FromRows" // ctor tag for FromRows
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for interface conformance.
var _ Matrix = (*Dense)(nil)

// FromRows copies a rectangular [][]float64 into a new Dense.
// Every row must have the same positive length. Under the default numeric
// policy a non-finite element fails with ErrNaNInf, wrapped with its
// coordinates.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRow, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)
	m := &Dense{r: len(rows), c: len(rows[0])}
	m.data = make([]float64, m.r*m.c)
	for i, row := range rows {
		if len(row) != m.c {
			return nil, denseErrorf(ctxFromRow, i, len(row), ErrInvalidDimensions)
		}
		if o.validateNaNInf {
			for j, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, denseErrorf(ctxFromRow, i, j, ErrNaNInf)
				}
			}
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Row returns row i as a slice aliasing the backing buffer. Writes through
// the slice bypass the numeric policy; callers that hand rows out should
// copy them first.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// Scale multiplies every element by f in place.
func (m *Dense) Scale(f float64) {
	floats.Scale(f, m.data)
}

// Clone returns a deep copy with its own buffer.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// EqualApprox reports whether m and other have the same shape and every
// pair of elements agrees within relative tolerance tol (see
// gonum's scalar.EqualWithinRel). Two nil matrices are equal.
func (m *Dense) EqualApprox(other *Dense, tol float64) bool {
	if m == nil || other == nil {
		return m == other
	}
	if ValidateSameShape(m, other) != nil {
		return false
	}
	for k, v := range m.data {
		if !scalar.EqualWithinRel(v, other.data[k], tol) {
			return false
		}
	}

	return true
}
