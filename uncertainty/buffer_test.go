// SPDX-License-Identifier: MIT

package uncertainty_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/uncertainty/phase"
	"github.com/katalvlaran/uncertainty/uncertainty"
)

func TestBuffer_Primitives(t *testing.T) {
	b := uncertainty.NewBuffer(nil)
	b.WriteInt(-7)
	b.WriteDouble(2.5)
	b.WriteString("Uncertainty_Pn_TT.txt")
	b.WriteString("")
	assert.Equal(t, 4+8+4+21+4, b.Len())

	i, err := b.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-7), i)
	d, err := b.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, 2.5, d)
	s, err := b.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Uncertainty_Pn_TT.txt", s)
	s, err = b.ReadString()
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 41, b.Offset())

	_, err = b.ReadDouble()
	assert.ErrorIs(t, err, uncertainty.ErrParse)

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Offset())
}

// TestBuffer_RoundTrip checks bit-exact round trips for every attribute; the
// buffer keeps internal units, so no conversion rounding is involved.
func TestBuffer_RoundTrip(t *testing.T) {
	for _, a := range phase.Attributes {
		t.Run(a.String(), func(t *testing.T) {
			g := depthGrid(t, a)
			b := uncertainty.NewBuffer(nil)
			require.NoError(t, uncertainty.Serialize(b, g))

			back, err := uncertainty.Deserialize(b, a)
			require.NoError(t, err)
			require.NotNil(t, back)
			assert.True(t, g.Equal(back))
			assert.Empty(t, cmp.Diff(rowsOf(t, g), rowsOf(t, back)))
			assert.Equal(t, g.Phase(), back.Phase())
			assert.Equal(t, uncertainty.NotSpecified, back.Source())
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestBuffer_SourcePreserved(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src.txt", "3 0\n0 5 10\n#\n1 2 4\n")
	g, err := uncertainty.ReadFile(path, phase.Pn, phase.TravelTime)
	require.NoError(t, err)

	b := uncertainty.NewBuffer(nil)
	require.NoError(t, uncertainty.Serialize(b, g))
	back, err := uncertainty.Deserialize(b, phase.TravelTime)
	require.NoError(t, err)
	assert.Equal(t, path, back.Source())
	assert.Empty(t, back.Depths(), "single-row tables store zero depths")
}

// TestBuffer_NoGrid checks the negative-phase sentinel in both directions.
func TestBuffer_NoGrid(t *testing.T) {
	b := uncertainty.NewBuffer(nil)
	require.NoError(t, uncertainty.Serialize(b, nil))
	require.NoError(t, uncertainty.Serialize(b, uncertainty.New(phase.NoPhase, phase.TravelTime)))
	require.NoError(t, uncertainty.Serialize(b, flatGrid(t)))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b.Bytes()[:4])

	for k := 0; k < 2; k++ {
		g, err := uncertainty.Deserialize(b, phase.TravelTime)
		require.NoError(t, err)
		assert.Nil(t, g, "sentinel %d", k)
	}
	g, err := uncertainty.Deserialize(b, phase.TravelTime)
	require.NoError(t, err)
	assert.True(t, flatGrid(t).Equal(g), "sentinels consume only the phase field")
}

// TestBuffer_AttributeNameIgnored shows that the stored attribute name does
// not influence decoding.
func TestBuffer_AttributeNameIgnored(t *testing.T) {
	b := uncertainty.NewBuffer(nil)
	b.WriteInt(int32(phase.Lg))
	b.WriteString("bogus")
	b.WriteString("hand-made")
	b.WriteInt(2)
	b.WriteInt(0)
	for _, v := range []float64{0, 10, 0.5, 1.5} {
		b.WriteDouble(v)
	}

	g, err := uncertainty.Deserialize(b, phase.Azimuth)
	require.NoError(t, err)
	assert.Equal(t, phase.Lg, g.Phase())
	assert.Equal(t, phase.Azimuth, g.Attribute())
	assert.Equal(t, "hand-made", g.Source())
	row, err := g.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5}, row, "buffer values are not converted")
}

func TestDeserialize_Malformed(t *testing.T) {
	full := uncertainty.NewBuffer(nil)
	require.NoError(t, uncertainty.Serialize(full, depthGrid(t, phase.TravelTime)))
	data := full.Bytes()

	for _, n := range []int{0, 2, 4, 6, 9, 20, len(data) - 1} {
		g, err := uncertainty.Deserialize(uncertainty.NewBuffer(data[:n]), phase.TravelTime)
		assert.ErrorIs(t, err, uncertainty.ErrParse, "prefix %d", n)
		assert.Nil(t, g)
	}

	huge := uncertainty.NewBuffer(nil)
	huge.WriteInt(0)
	huge.WriteInt(1 << 30) // attribute name length
	_, err := uncertainty.Deserialize(huge, phase.TravelTime)
	assert.ErrorIs(t, err, uncertainty.ErrParse)

	neg := uncertainty.NewBuffer(nil)
	neg.WriteInt(0)
	neg.WriteInt(-5)
	_, err = uncertainty.Deserialize(neg, phase.TravelTime)
	assert.ErrorIs(t, err, uncertainty.ErrParse)
}
