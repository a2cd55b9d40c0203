// SPDX-License-Identifier: MIT

package uncertainty

import (
	"fmt"
	"math"

	"github.com/katalvlaran/uncertainty/phase"
)

// Buffer is an in-memory byte buffer with fixed-width primitives:
// little-endian int32, IEEE-754 float64, and strings prefixed by an int32
// byte length. Writes append; reads consume from an internal offset.
type Buffer struct {
	data []byte
	off  int
}

// NewBuffer returns a Buffer that reads from data. The slice is not copied.
func NewBuffer(data []byte) *Buffer { return &Buffer{data: data} }

// Bytes returns the unread portion of the buffer.
func (b *Buffer) Bytes() []byte { return b.data[b.off:] }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return len(b.data) - b.off }

// Offset returns the number of bytes consumed so far.
func (b *Buffer) Offset() int { return b.off }

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.off = 0
}

// WriteInt appends v as a little-endian int32.
func (b *Buffer) WriteInt(v int32) {
	b.data = byteOrder.AppendUint32(b.data, uint32(v))
}

// WriteDouble appends v as a little-endian float64.
func (b *Buffer) WriteDouble(v float64) {
	b.data = byteOrder.AppendUint64(b.data, math.Float64bits(v))
}

// WriteString appends s prefixed by its int32 byte length.
func (b *Buffer) WriteString(s string) {
	b.WriteInt(int32(len(s)))
	b.data = append(b.data, s...)
}

func (b *Buffer) take(what string, n int) ([]byte, error) {
	if n < 0 || n > b.Len() {
		return nil, fmt.Errorf("buffer offset %d: truncated %s: need %d bytes, have %d: %w", b.off, what, n, b.Len(), ErrParse)
	}
	p := b.data[b.off : b.off+n]
	b.off += n

	return p, nil
}

// ReadInt consumes a little-endian int32.
func (b *Buffer) ReadInt() (int32, error) {
	p, err := b.take("int", 4)
	if err != nil {
		return 0, err
	}

	return int32(byteOrder.Uint32(p)), nil
}

// ReadDouble consumes a little-endian float64.
func (b *Buffer) ReadDouble() (float64, error) {
	p, err := b.take("double", 8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(byteOrder.Uint64(p)), nil
}

// ReadString consumes a length-prefixed string.
func (b *Buffer) ReadString() (string, error) {
	n, err := b.ReadInt()
	if err != nil {
		return "", err
	}
	p, err := b.take("string", int(n))
	if err != nil {
		return "", err
	}

	return string(p), nil
}

// bufferReader adapts Buffer to fieldReader.
type bufferReader struct{ b *Buffer }

func (r bufferReader) errorf(format string, args ...any) error {
	return fmt.Errorf("buffer offset %d: %s: %w", r.b.off, fmt.Sprintf(format, args...), ErrParse)
}

func (r bufferReader) readInt(what string) (int, error) {
	v, err := r.b.ReadInt()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}

	return int(v), nil
}

func (r bufferReader) readFloats(what string, dst []float64) error {
	p, err := r.b.take(what, 8*len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float64frombits(byteOrder.Uint64(p[8*i:]))
	}

	return nil
}

func (r bufferReader) skipMarker() error { return nil }

// bufferWriter adapts Buffer to fieldWriter.
type bufferWriter struct{ b *Buffer }

func (w bufferWriter) writeInts(v ...int) error {
	for _, n := range v {
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("count %d does not fit in int32", n)
		}
		w.b.WriteInt(int32(n))
	}

	return nil
}

func (w bufferWriter) writeFloats(v []float64, _ int) error {
	for _, x := range v {
		w.b.WriteDouble(x)
	}

	return nil
}

func (w bufferWriter) writeMarker() error { return nil }

// Serialize appends g to b: int32 phase, attribute name, source name, then
// the numeric payload with values in internal units. A nil grid, or one
// whose phase is unset, is written as the single int32 -1 so that
// Deserialize reports "no grid".
func Serialize(b *Buffer, g *Grid) error {
	if g == nil || g.phase < 0 {
		b.WriteInt(-1)
		return nil
	}
	b.WriteInt(int32(g.phase))
	b.WriteString(g.attribute.String())
	b.WriteString(g.source)
	if err := encode(bufferWriter{b}, g, 1, -1); err != nil {
		return fmt.Errorf("Serialize: %w: %w", ErrWrite, err)
	}

	return nil
}

// Deserialize reads a grid written by Serialize. The attribute name stored in
// the header is skipped; a selects the grid's attribute. A negative phase
// yields (nil, nil) and consumes nothing beyond it.
//
// Errors:
//   - ErrParse (with buffer offset) on truncated or inconsistent data.
func Deserialize(b *Buffer, a phase.Attribute, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	p, err := b.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("Deserialize: phase: %w", err)
	}
	if p < 0 {
		return nil, nil
	}
	if _, err := b.ReadString(); err != nil {
		return nil, fmt.Errorf("Deserialize: attribute name: %w", err)
	}
	source, err := b.ReadString()
	if err != nil {
		return nil, fmt.Errorf("Deserialize: source name: %w", err)
	}
	t, err := decode(bufferReader{b}, 1, o)
	if err != nil {
		return nil, fmt.Errorf("Deserialize: %w", err)
	}

	return newGrid(phase.Phase(p), a, t.distances, t.depths, t.values, source), nil
}
