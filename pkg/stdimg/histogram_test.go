package stdimg

import (
	"testing"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

func TestComputeHistogram(t *testing.T) {
	m := rank.NewImage(4, 1, rank.Depth8)
	copy(m.Pix, []uint16{0, 3, 3, 200})
	h := ComputeHistogram(m, 0)
	if len(h) != 256 {
		t.Fatalf("expected 256 bins, got %d", len(h))
	}
	if h[0] != 1 || h[3] != 2 || h[200] != 1 {
		t.Fatalf("unexpected counts %v %v %v", h[0], h[3], h[200])
	}
	// overflow lands in the last bin
	h = ComputeHistogram(m, 8)
	if h[7] != 1 || h[3] != 2 {
		t.Fatalf("unexpected clamped histogram %v", h)
	}
	if ComputeHistogram(nil, 4) != nil {
		t.Fatal("nil image should give nil histogram")
	}
}

func TestQuantile(t *testing.T) {
	hist := []int{0, 4, 0, 4, 2}
	cases := []struct {
		p    float64
		want int
	}{
		{0, 1},
		{0.39, 1},
		{0.4, 3},
		{0.79, 3},
		{0.8, 4},
		{1, 4},
	}
	for _, c := range cases {
		if got := Quantile(hist, c.p); got != c.want {
			t.Fatalf("Quantile(%v) = %d; want %d", c.p, got, c.want)
		}
	}
	if Quantile(make([]int, 5), 0.5) != 0 {
		t.Fatal("empty histogram should give 0")
	}
}

func TestRenderHistogramImage(t *testing.T) {
	hist := make([]int, 256)
	hist[10] = 5
	hist[250] = 10
	img := RenderHistogramImage(hist, 256, 50, 0, 1)
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 50 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	// p0 marker at bin 10
	if c := img.NRGBAAt(10, 0); c.R != 255 || c.G != 0 {
		t.Fatalf("expected red marker at x=10, got %v", c)
	}
	// tallest bar reaches the top row
	if c := img.NRGBAAt(250, 0); c.G != 0 {
		t.Fatalf("expected p1 marker at x=250, got %v", c)
	}
	if c := img.NRGBAAt(100, 49); c.R != 255 || c.G != 255 {
		t.Fatalf("empty bin should stay white, got %v", c)
	}
	plain := RenderHistogramImage(hist, 0, 0, -1, -1)
	if plain.Bounds().Dx() != 512 {
		t.Fatal("default width should be 512")
	}
	if c := plain.NRGBAAt(20, 119); c.R != 96 {
		t.Fatalf("expected bar at bin 10, got %v", c)
	}
}
