// SPDX-License-Identifier: MIT

package uncertainty

import (
	"fmt"

	"github.com/katalvlaran/uncertainty/matrix"
)

// Upper bounds on declared sizes. They keep a corrupt header from driving
// huge allocations.
const (
	maxSamples = 1 << 20 // per axis
	maxCells   = 1 << 24 // rows × distances
)

// fieldReader is the primitive capability the shared decoder needs from a
// medium. Errors returned by implementations already carry the medium's
// position (line or byte offset) and wrap ErrParse.
type fieldReader interface {
	readInt(what string) (int, error)
	readFloats(what string, dst []float64) error
	// skipMarker consumes the separator that precedes each value row.
	// Media without separators implement it as a no-op.
	skipMarker() error
	// errorf builds an ErrParse error at the current position.
	errorf(format string, args ...any) error
}

// fieldWriter is the encoding counterpart of fieldReader.
type fieldWriter interface {
	writeInts(v ...int) error
	// writeFloats writes one group of samples. decimals < 0 asks for the
	// shortest exact representation; media that store raw bits ignore it.
	writeFloats(v []float64, decimals int) error
	writeMarker() error
}

// table is the decoded payload shared by all encodings.
type table struct {
	distances []float64
	depths    []float64
	values    *matrix.Dense // nil when there are no distance samples
}

// decode reads [nd, nk, distances, depths, rows...] and scales values by
// toInternal.
func decode(r fieldReader, toInternal float64, o options) (table, error) {
	nd, err := r.readInt("distance count")
	if err != nil {
		return table{}, err
	}
	nk, err := r.readInt("depth count")
	if err != nil {
		return table{}, err
	}
	if nd < 0 || nd > maxSamples {
		return table{}, r.errorf("distance count %d out of range [0,%d]", nd, maxSamples)
	}
	if nk < 0 || nk > maxSamples {
		return table{}, r.errorf("depth count %d out of range [0,%d]", nk, maxSamples)
	}
	nrows := max(nk, 1)
	if nd*nrows > maxCells {
		return table{}, r.errorf("table of %d×%d cells exceeds %d", nrows, nd, maxCells)
	}

	t := table{distances: make([]float64, nd)}
	if err := r.readFloats("distances", t.distances); err != nil {
		return table{}, err
	}
	if nk > 0 {
		t.depths = make([]float64, nk)
		if err := r.readFloats("depths", t.depths); err != nil {
			return table{}, err
		}
	}
	if err := checkAxes(t.distances, t.depths); err != nil {
		return table{}, r.errorf("%v", err)
	}

	rows := make([][]float64, nrows)
	for i := range rows {
		if err := r.skipMarker(); err != nil {
			return table{}, err
		}
		rows[i] = make([]float64, nd)
		if err := r.readFloats(fmt.Sprintf("values row %d", i), rows[i]); err != nil {
			return table{}, err
		}
	}
	if nd == 0 {
		return t, nil
	}

	t.values, err = matrix.FromRows(rows, o.matrixOpts...)
	if err != nil {
		return table{}, r.errorf("%v", err)
	}
	if toInternal != 1 {
		t.values.Scale(toInternal)
	}

	return t, nil
}

// encode writes g in the shared layout, scaling values by toFile. decimals
// is forwarded to writeFloats for the value rows.
func encode(w fieldWriter, g *Grid, toFile float64, decimals int) error {
	if err := w.writeInts(len(g.distances), len(g.depths)); err != nil {
		return err
	}
	if err := w.writeFloats(g.distances, -1); err != nil {
		return err
	}
	if len(g.depths) > 0 {
		if err := w.writeFloats(g.depths, -1); err != nil {
			return err
		}
	}

	nrows := max(len(g.depths), 1)
	scaled := make([]float64, len(g.distances))
	for i := 0; i < nrows; i++ {
		if err := w.writeMarker(); err != nil {
			return err
		}
		if i < len(g.rows) {
			for j, v := range g.rows[i] {
				scaled[j] = v * toFile
			}
		}
		if err := w.writeFloats(scaled, decimals); err != nil {
			return err
		}
	}

	return nil
}
