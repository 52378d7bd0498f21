package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace returns the face used for labels. fontPath may be empty to use
// the built-in 7x13 face; size is in points and only applies to font files.
func LoadFace(fontPath string, size float64) (font.Face, error) {
	if fontPath == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", fontPath, err)
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", fontPath, err)
	}
	if size <= 0 {
		size = 12
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// Annotate draws text onto dst with its baseline starting at x,y (pixel coords).
func Annotate(dst draw.Image, text string, face font.Face, x, y int, col color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// LabelHistogram writes "p0=level" and "p1=level" beside the markers drawn
// by RenderHistogramImage. Negative fractions are skipped.
func LabelHistogram(img *image.NRGBA, hist []int, p0, p1 float64, face font.Face) {
	if img == nil || len(hist) == 0 {
		return
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	width := img.Bounds().Dx()
	lineHeight := face.Metrics().Height.Ceil()
	red := color.NRGBA{R: 255, A: 255}
	for i, p := range []float64{p0, p1} {
		if p < 0 {
			continue
		}
		level := Quantile(hist, p)
		text := fmt.Sprintf("p%d=%d", i, level)
		x := min(level*width/len(hist), width-1) + 2
		if tw := font.MeasureString(face, text).Ceil(); x+tw > width {
			// flip to the left of the marker
			x -= tw + 4
		}
		Annotate(img, text, face, max(x, 0), (i+1)*lineHeight, red)
	}
}
