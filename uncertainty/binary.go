// SPDX-License-Identifier: MIT

package uncertainty

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/uncertainty/phase"
)

// byteOrder is the byte order of the binary stream and Buffer encodings.
var byteOrder = binary.LittleEndian

// binaryReader decodes fixed-width fields from a stream, counting bytes
// consumed for error positions.
type binaryReader struct {
	r    io.Reader
	name string
	off  int64
	buf  []byte
}

func (r *binaryReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%s offset %d: %s: %w", r.name, r.off, fmt.Sprintf(format, args...), ErrParse)
}

func (r *binaryReader) fill(what string, n int) ([]byte, error) {
	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	b := r.buf[:n]
	got, err := io.ReadFull(r.r, b)
	r.off += int64(got)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, r.errorf("truncated %s: need %d bytes, have %d", what, n, got)
		}
		return nil, fmt.Errorf("%s offset %d: reading %s: %w: %w", r.name, r.off, what, ErrParse, err)
	}

	return b, nil
}

func (r *binaryReader) readInt(what string) (int, error) {
	b, err := r.fill(what, 4)
	if err != nil {
		return 0, err
	}

	return int(int32(byteOrder.Uint32(b))), nil
}

func (r *binaryReader) readFloats(what string, dst []float64) error {
	if len(dst) == 0 {
		return nil
	}
	b, err := r.fill(what, 8*len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float64frombits(byteOrder.Uint64(b[8*i:]))
	}

	return nil
}

func (r *binaryReader) skipMarker() error { return nil }

// binaryWriter encodes fixed-width fields to a stream.
type binaryWriter struct {
	w   io.Writer
	buf []byte
}

func (w *binaryWriter) writeInts(v ...int) error {
	w.buf = w.buf[:0]
	for _, n := range v {
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("count %d does not fit in int32", n)
		}
		w.buf = byteOrder.AppendUint32(w.buf, uint32(int32(n)))
	}
	_, err := w.w.Write(w.buf)

	return err
}

func (w *binaryWriter) writeFloats(v []float64, _ int) error {
	w.buf = w.buf[:0]
	for _, x := range v {
		w.buf = byteOrder.AppendUint64(w.buf, math.Float64bits(x))
	}
	_, err := w.w.Write(w.buf)

	return err
}

func (w *binaryWriter) writeMarker() error { return nil }

// ReadBinary decodes a binary table stream: int32 distance count, int32
// depth count, float64 distances, float64 depths (when the count is
// positive), then max(depth count, 1) rows of float64 values. All fields
// are little-endian. Angular values are converted from file units.
//
// Errors:
//   - ErrParse (with byte offset) on truncated input, out-of-range counts or
//     unordered axes.
func ReadBinary(r io.Reader, name string, p phase.Phase, a phase.Attribute, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	t, err := decode(&binaryReader{r: r, name: name}, a.ToInternal(), o)
	if err != nil {
		return nil, fmt.Errorf("ReadBinary: %w", err)
	}

	return newGrid(p, a, t.distances, t.depths, t.values, name), nil
}

// WriteBinary encodes g in the binary stream layout read by ReadBinary.
func (g *Grid) WriteBinary(w io.Writer) error {
	if err := encode(&binaryWriter{w: w}, g, g.attribute.ToFile(), -1); err != nil {
		return fmt.Errorf("WriteBinary: %w: %w", ErrWrite, err)
	}

	return nil
}
