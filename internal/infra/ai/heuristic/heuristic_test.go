package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestSeed_KnownValues(t *testing.T) {
	assert.Equal(t, int64(96354), Seed("abc"))
	assert.Equal(t, int64(558684065), Seed(pixelPNG))
	assert.Equal(t, int64(0), Seed(""))
}

func TestSeed_OnlyPrefixCounts(t *testing.T) {
	base := strings.Repeat("x", 1000)
	assert.Equal(t, int64(1715418112), Seed(base))
	assert.Equal(t, Seed(base), Seed(base+"anything after the prefix"))
}

func TestSelect_DesignTypeAndCount(t *testing.T) {
	sel := Select(96354)
	assert.Equal(t, "marketing", sel.DesignType)
	assert.Len(t, sel.Issues, 4)

	sel = Select(558684065)
	assert.Equal(t, "poster", sel.DesignType)
	assert.Len(t, sel.Issues, 6)

	sel = Select(1715418112)
	assert.Equal(t, "ux", sel.DesignType)
	assert.Len(t, sel.Issues, 5)
}

func TestSelect_TakesCatalogPrefix(t *testing.T) {
	sel := Select(5)
	require.Len(t, sel.Issues, 6)
	assert.Equal(t, "Insufficient Color Contrast", sel.Issues[0].Title)
	assert.Equal(t, "Weak Visual Anchor", sel.Issues[5].Title)
}

func TestGenerate_DeterministicSelection(t *testing.T) {
	a := Generate(pixelPNG, nil)
	b := Generate(pixelPNG, nil)

	assert.Equal(t, critique.ModeMock, a.Mode)
	assert.Equal(t, "POSTER", a.DesignType)
	assert.Equal(t, a.DesignType, b.DesignType)
	require.Len(t, a.Annotations, len(b.Annotations))
	for i := range a.Annotations {
		assert.Equal(t, a.Annotations[i].Title, b.Annotations[i].Title)
		assert.Equal(t, a.Annotations[i].Type, b.Annotations[i].Type)
		assert.Equal(t, a.Annotations[i].Severity, b.Annotations[i].Severity)
		assert.Equal(t, i+1, a.Annotations[i].ID)
	}
}

func TestGenerate_FixedRandGivesBaseCoordinates(t *testing.T) {
	ux := strings.Repeat("x", 1000)
	res := Generate(ux, fixedRand(0.5))
	require.Len(t, res.Annotations, 5)
	assert.Equal(t, "UX", res.DesignType)

	want := [][2]float64{{50, 25}, {30, 45}, {70, 45}, {50, 25}, {30, 45}}
	for i, a := range res.Annotations {
		assert.Equal(t, want[i][0], a.X, "x of annotation %d", i)
		assert.Equal(t, want[i][1], a.Y, "y of annotation %d", i)
	}

	poster := Generate(pixelPNG, fixedRand(0.5))
	assert.Equal(t, 50.0, poster.Annotations[1].X)
	assert.Equal(t, 20.0, poster.Annotations[1].Y)
}

func TestGenerate_JitterStaysInBounds(t *testing.T) {
	res := Generate(pixelPNG, fixedRand(0))
	for _, a := range res.Annotations {
		assert.GreaterOrEqual(t, a.X, 5.0)
		assert.GreaterOrEqual(t, a.Y, 5.0)
	}
	// poster index 1 sits at y=20, so the -10 jitter lands on 10
	assert.Equal(t, 10.0, res.Annotations[1].Y)

	res = Generate(pixelPNG, &seqRand{vals: []float64{0.999999, 0.999999}})
	for _, a := range res.Annotations {
		assert.LessOrEqual(t, a.X, 95.0)
		assert.LessOrEqual(t, a.Y, 95.0)
	}
	// poster index 2 sits at y=80
	assert.InDelta(t, 90.0, res.Annotations[2].Y, 0.001)
}
