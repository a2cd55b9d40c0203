// SPDX-License-Identifier: MIT

package uncertainty

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Quantity selects what a query reports. Value and Variance read the same
// table with the same blend; the distinction is part of the caller's
// contract, not of the arithmetic.
type Quantity int

const (
	QuantityValue Quantity = iota
	QuantityVariance
)

// String names the quantity.
func (q Quantity) String() string {
	if q == QuantityVariance {
		return "variance"
	}
	return "value"
}

const radToDeg = 180 / math.Pi

// batchChunk is the number of queries handled by one goroutine in Evaluate batches.
const batchChunk = 4096

// Value returns the interpolated uncertainty at distance (radians) and
// depth (km).
func (g *Grid) Value(distance, depth float64) float64 {
	return g.Evaluate(QuantityValue, distance, depth)
}

// Variance returns the interpolated variance at distance (radians) and
// depth (km).
func (g *Grid) Variance(distance, depth float64) float64 {
	return g.Evaluate(QuantityVariance, distance, depth)
}

// Evaluate interpolates the table at (distance, depth).
//
// Algorithm:
//  1. Convert distance from radians to degrees.
//  2. Without a depth axis, or at/after the last depth, use a single row
//     (the last one) and do not interpolate in depth.
//     Otherwise bracket depth and blend the two neighbouring rows.
//  3. Within a row, at/after the last distance return the last column;
//     otherwise bracket the distance and blend linearly.
//
// Weights are not clamped at the low end, so queries before the first
// sample extrapolate from the first interval.
//
// The grid must hold at least two distance samples. An empty grid yields
// NaN; a single-sample grid yields its only value.
func (g *Grid) Evaluate(q Quantity, distance, depth float64) float64 {
	if len(g.rows) == 0 || len(g.distances) == 0 {
		return math.NaN()
	}
	x := distance * radToDeg

	nz := len(g.depths)
	if nz <= 1 || depth >= g.depths[nz-1] {
		return g.rowAt(len(g.rows)-1, x)
	}
	iz, wz := locate(depth, g.depths)
	lo := g.rowAt(iz, x)
	hi := g.rowAt(iz+1, x)

	return lo + wz*(hi-lo)
}

// rowAt interpolates value row i at x degrees.
func (g *Grid) rowAt(i int, x float64) float64 {
	row := g.rows[i]
	n := len(g.distances)
	if n < 2 || x >= g.distances[n-1] {
		return row[n-1]
	}
	ix, wx := locate(x, g.distances)

	return row[ix] + wx*(row[ix+1]-row[ix])
}

// locate returns the bracketing index i with s[i] <= x < s[i+1] and the
// linear weight of x inside that interval. s must be strictly increasing
// with at least two samples, and x must be below s[len(s)-1].
//
// The search starts at the midpoint and moves by a step that halves on
// every iteration. A two-sample axis always yields index 0. When x is below
// s[0] the index clamps to 0 and the weight is negative.
func locate(x float64, s []float64) (int, float64) {
	n := len(s)
	i := 0
	if n > 2 {
		last := n - 2
		i = min(n/2, last)
		step := max(n/4, 1)
		for {
			if s[i+1] <= x && i < last {
				i = min(i+step, last)
			} else if s[i] > x && i > 0 {
				i = max(i-step, 0)
			} else {
				break
			}
			step = max(step/2, 1)
		}
	}

	return i, (x - s[i]) / (s[i+1] - s[i])
}

// EvaluateAll answers a batch of (distances[k], depths[k]) queries. Large
// batches are split across goroutines; the grid is read-only so no locking
// is involved. ctx cancels outstanding chunks.
//
// Errors:
//   - ErrDimensionMismatch when the slices differ in length.
//   - ctx.Err() when ctx is cancelled before all chunks ran.
func (g *Grid) EvaluateAll(ctx context.Context, q Quantity, distances, depths []float64) ([]float64, error) {
	if len(distances) != len(depths) {
		return nil, fmt.Errorf("EvaluateAll: %d distances, %d depths: %w", len(distances), len(depths), ErrDimensionMismatch)
	}
	out := make([]float64, len(distances))
	if len(out) <= batchChunk {
		for k := range out {
			out[k] = g.Evaluate(q, distances[k], depths[k])
		}
		return out, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(out); start += batchChunk {
		end := min(start+batchChunk, len(out))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for k := start; k < end; k++ {
				out[k] = g.Evaluate(q, distances[k], depths[k])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
