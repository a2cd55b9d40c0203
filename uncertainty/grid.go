// SPDX-License-Identifier: MIT

package uncertainty

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/uncertainty/matrix"
	"github.com/katalvlaran/uncertainty/phase"
)

// EqualTolerance is the relative tolerance used by Grid.Equal.
const EqualTolerance = 1e-6

// NotSpecified is the source name of grids that were not read from a file.
const NotSpecified = "not_specified"

// Grid is an uncertainty table sampled over distance and depth.
//
// Invariants:
//   - values has max(len(depths),1) rows of len(distances) columns,
//     or is nil when the grid holds no samples;
//   - len(depths) is 0 or at least 2; a single depth is dropped on load;
//   - distances and depths are strictly increasing.
type Grid struct {
	phase     phase.Phase
	attribute phase.Attribute
	distances []float64     // degrees
	depths    []float64     // km; empty means no depth axis
	values    *matrix.Dense // internal units
	rows      [][]float64   // row views into values
	source    string
}

// New returns an empty grid carrying only its identifiers.
func New(p phase.Phase, a phase.Attribute) *Grid {
	return &Grid{phase: p, attribute: a, source: NotSpecified}
}

// FileName returns the canonical table file name for a phase/attribute pair,
// e.g. "Uncertainty_Pn_TT.txt".
func FileName(p phase.Phase, a phase.Attribute) string {
	return "Uncertainty_" + p.String() + "_" + a.String() + ".txt"
}

// FromValues builds a grid from samples. rows holds one slice per depth (a
// single slice when depths is empty), each with one value per distance, in
// internal units. Inputs are copied.
//
// Errors:
//   - ErrInvalidGrid when the shape, ordering or finiteness invariants fail.
func FromValues(p phase.Phase, a phase.Attribute, distances, depths []float64, rows [][]float64) (*Grid, error) {
	if len(distances) == 0 {
		return nil, fmt.Errorf("FromValues: no distance samples: %w", ErrInvalidGrid)
	}
	if err := checkAxes(distances, depths); err != nil {
		return nil, fmt.Errorf("FromValues: %v: %w", err, ErrInvalidGrid)
	}
	want := max(len(depths), 1)
	if len(rows) != want {
		return nil, fmt.Errorf("FromValues: %d value rows for %d depths: %w", len(rows), len(depths), ErrInvalidGrid)
	}
	for i, r := range rows {
		if err := matrix.ValidateVecLen(r, len(distances)); err != nil {
			return nil, fmt.Errorf("FromValues: row %d: %w: %w", i, ErrInvalidGrid, err)
		}
	}
	values, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("FromValues: %w: %w", ErrInvalidGrid, err)
	}

	return newGrid(p, a, slices.Clone(distances), slices.Clone(depths), values, NotSpecified), nil
}

// newGrid assembles a grid from owned arrays. A lone depth sample is dropped
// so that single-row tables always use the no-depth-axis convention.
func newGrid(p phase.Phase, a phase.Attribute, distances, depths []float64, values *matrix.Dense, source string) *Grid {
	if len(depths) == 1 {
		depths = nil
	}
	g := &Grid{
		phase:     p,
		attribute: a,
		distances: distances,
		depths:    depths,
		values:    values,
		source:    source,
	}
	if values != nil {
		g.rows = make([][]float64, values.Rows())
		for i := range g.rows {
			g.rows[i], _ = values.Row(i) // i is in range by construction
		}
	}

	return g
}

// checkAxes validates the sample axes.
func checkAxes(distances, depths []float64) error {
	if err := matrix.ValidateFinite(distances); err != nil {
		return fmt.Errorf("distances: %w", err)
	}
	if !matrix.IsStrictlyIncreasing(distances) {
		return fmt.Errorf("distances are not strictly increasing")
	}
	if err := matrix.ValidateFinite(depths); err != nil {
		return fmt.Errorf("depths: %w", err)
	}
	if !matrix.IsStrictlyIncreasing(depths) {
		return fmt.Errorf("depths are not strictly increasing")
	}

	return nil
}

// Phase returns the phase identifier.
func (g *Grid) Phase() phase.Phase { return g.phase }

// Attribute returns the attribute identifier.
func (g *Grid) Attribute() phase.Attribute { return g.attribute }

// Source returns the file the grid was read from, or NotSpecified.
func (g *Grid) Source() string { return g.source }

// Distances returns a copy of the distance samples in degrees.
func (g *Grid) Distances() []float64 { return slices.Clone(g.distances) }

// Depths returns a copy of the depth samples in km. Empty when the table has
// no depth axis.
func (g *Grid) Depths() []float64 { return slices.Clone(g.depths) }

// Len returns the number of distance samples.
func (g *Grid) Len() int { return len(g.distances) }

// NumRows returns the number of value rows: 0 for an empty grid, otherwise
// max(len(Depths()), 1).
func (g *Grid) NumRows() int { return len(g.rows) }

// IsEmpty reports whether the grid holds no distance samples. Queries on an
// empty grid return NaN.
func (g *Grid) IsEmpty() bool { return len(g.distances) == 0 }

// Row returns a copy of value row i in internal units.
func (g *Grid) Row(i int) ([]float64, error) {
	if g.values == nil {
		return nil, fmt.Errorf("Row(%d): %w", i, matrix.ErrOutOfRange)
	}
	r, err := g.values.Row(i)
	if err != nil {
		return nil, err
	}

	return slices.Clone(r), nil
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	var values *matrix.Dense
	if matrix.ValidateNotNil(g.values) == nil {
		values = g.values.Clone()
	}

	return newGrid(g.phase, g.attribute, slices.Clone(g.distances), slices.Clone(g.depths), values, g.source)
}

// Reset releases all samples and sets both identifiers to their unset value.
func (g *Grid) Reset() {
	g.phase = phase.NoPhase
	g.attribute = phase.NoAttribute
	g.distances = nil
	g.depths = nil
	g.values = nil
	g.rows = nil
}

// Equal reports whether g and other carry the same identifiers and the same
// samples within EqualTolerance (relative). The source name is ignored.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.phase != other.phase || g.attribute != other.attribute {
		return false
	}
	if !equalWithinRel(g.distances, other.distances) || !equalWithinRel(g.depths, other.depths) {
		return false
	}

	return g.values.EqualApprox(other.values, EqualTolerance)
}

func equalWithinRel(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	return floats.EqualFunc(a, b, func(x, y float64) bool {
		return scalar.EqualWithinRel(x, y, EqualTolerance)
	})
}

// String implements fmt.Stringer with a one-line summary.
func (g *Grid) String() string {
	return fmt.Sprintf("Uncertainty{phase=%s attribute=%s distances=%d depths=%d source=%s}",
		g.phase, g.attribute, len(g.distances), len(g.depths), g.source)
}
