// SPDX-License-Identifier: MIT

package matrix

// Matrix is the shape view the validators work on.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int
}
