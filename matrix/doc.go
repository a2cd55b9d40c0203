// SPDX-License-Identifier: MIT

// Package matrix provides the row-major float64 table that backs an
// uncertainty grid.
//
// The matrix package provides:
//
//   - Dense, a flat row-major buffer built from rows, with bounds-checked
//     zero-copy row views for interpolation hot paths and in-place scaling.
//   - A finite-value numeric policy (NaN/±Inf rejected on ingestion unless
//     disabled with WithAllowNaNInf).
//   - Relative-tolerance equality (EqualApprox) built on gonum's
//     floats/scalar helpers.
//
// All public methods return sentinel errors (see errors.go) instead of
// panicking on user input.
package matrix
