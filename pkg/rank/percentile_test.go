package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	cases := []struct {
		name   string
		levels []int
		p0, p1 float64
		want   Bounds
	}{
		{"full range", []int{5, 1, 9, 3}, 0, 1, Bounds{1, 9}},
		{"single value", []int{4, 4, 4}, 0, 1, Bounds{4, 4}},
		// cumulative at 10 is exactly half, so p0=0.5 moves past it
		{"strict lower mark", []int{10, 10, 20, 20}, 0.5, 1, Bounds{20, 20}},
		// cumulative at 10 reaches half, so p1=0.5 stops there
		{"inclusive upper mark", []int{10, 10, 20, 20}, 0, 0.5, Bounds{10, 10}},
		{"middle", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 0.1, 0.9, Bounds{1, 8}},
		{"p0 one selects maximum", []int{2, 6, 6, 1}, 1, 1, Bounds{6, 6}},
		{"equal fractions collapse to lo", []int{1, 2, 3, 4}, 0.5, 0.5, Bounds{3, 3}},
		{"p1 zero", []int{7, 8}, 0, 0, Bounds{7, 7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := histogramOf(256, c.levels...)
			b, ok := Locate(h, c.p0, c.p1)
			require.True(t, ok)
			assert.Equal(t, c.want, b)
			assert.LessOrEqual(t, b.Lo, b.Hi)
			assert.NotZero(t, h.Count(b.Lo))
			assert.NotZero(t, h.Count(b.Hi))
		})
	}
}

func TestLocateEmpty(t *testing.T) {
	_, ok := Locate(NewHistogram(4), 0, 1)
	assert.False(t, ok)
}

func TestClipped(t *testing.T) {
	h := histogramOf(16, 1, 2, 2, 3, 15)
	n, s := clipped(h, Bounds{2, 3})
	assert.Equal(t, int64(3), n)
	assert.Equal(t, int64(7), s)
}
