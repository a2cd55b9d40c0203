// SPDX-License-Identifier: MIT
// Package uncertainty_test contains shared fixtures for the uncertainty tests.

package uncertainty_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/uncertainty/phase"
	"github.com/katalvlaran/uncertainty/uncertainty"
)

// rad converts degrees to radians, the unit Value and Variance expect.
func rad(deg float64) float64 { return deg * math.Pi / 180 }

// flatGrid is the depth-independent table distances=[0,5,10], values=[1,2,4].
func flatGrid(t testing.TB) *uncertainty.Grid {
	t.Helper()
	g, err := uncertainty.FromValues(phase.Pn, phase.TravelTime,
		[]float64{0, 5, 10}, nil, [][]float64{{1, 2, 4}})
	require.NoError(t, err)

	return g
}

// flatGridOf builds a depth-independent travel-time table.
func flatGridOf(t testing.TB, distances, values []float64) *uncertainty.Grid {
	t.Helper()
	g, err := uncertainty.FromValues(phase.Pn, phase.TravelTime, distances, nil, [][]float64{values})
	require.NoError(t, err)

	return g
}

// depthGrid is a 3-depth × 4-distance table where row k is (k+1)·[1,2,3,4].
func depthGrid(t testing.TB, a phase.Attribute) *uncertainty.Grid {
	t.Helper()
	g, err := uncertainty.FromValues(phase.Sn, a,
		[]float64{0, 10, 20, 30},
		[]float64{0, 100, 200},
		[][]float64{
			{1, 2, 3, 4},
			{2, 4, 6, 8},
			{3, 6, 9, 12},
		})
	require.NoError(t, err)

	return g
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}
