package stdimg

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func countNonWhite(img *image.NRGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				n++
			}
		}
	}
	return n
}

func TestAnnotateBasic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	face, err := LoadFace("", 0)
	if err != nil {
		t.Fatalf("LoadFace failed: %v", err)
	}
	Annotate(img, "Hello", face, 10, 20, color.Black)
	if countNonWhite(img, img.Bounds()) == 0 {
		t.Fatalf("expected annotate to draw non-white pixels")
	}
}

func TestLoadFaceErrors(t *testing.T) {
	if _, err := LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 12); err == nil {
		t.Fatal("expected error for missing font")
	}
	bogus := filepath.Join(t.TempDir(), "bogus.ttf")
	if err := os.WriteFile(bogus, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFace(bogus, 12); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLabelHistogram(t *testing.T) {
	hist := make([]int, 256)
	hist[10] = 5
	hist[250] = 10
	img := RenderHistogramImage(hist, 256, 60, 0, -1)
	before := countNonWhite(img, image.Rect(12, 0, 256, 14))
	LabelHistogram(img, hist, 0, -1, nil)
	if after := countNonWhite(img, image.Rect(12, 0, 256, 14)); after <= before {
		t.Fatalf("expected p0 label right of the marker (%d -> %d non-white)", before, after)
	}
}

func TestLabelHistogramFlipsAtRightEdge(t *testing.T) {
	hist := make([]int, 256)
	hist[250] = 1
	img := RenderHistogramImage(hist, 256, 60, -1, -1)
	LabelHistogram(img, hist, -1, 1, nil)
	// the second line holds p1; it must be drawn left of the marker
	if countNonWhite(img, image.Rect(150, 14, 250, 28)) == 0 {
		t.Fatal("expected p1 label drawn left of the marker")
	}
}
