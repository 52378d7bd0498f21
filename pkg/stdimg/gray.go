package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// SourceDepth reports the sample depth a decoded image carries: 16 for the
// 16-bit-per-channel image types, 8 for everything else.
func SourceDepth(img image.Image) rank.Depth {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return rank.Depth16
	}
	return rank.Depth8
}

// ToRank converts img to a single-channel rank.Image using Rec. 709 luma.
// depth 0 keeps the source depth; an 8-bit source promoted to 16 bits is
// scaled by 257 so white stays white.
func ToRank(img image.Image, depth rank.Depth) (*rank.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	if depth == 0 {
		depth = SourceDepth(img)
	}
	if depth != rank.Depth8 && depth != rank.Depth16 {
		return nil, fmt.Errorf("%w: %d", rank.ErrDepth, depth)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", rank.ErrImageShape, w, h)
	}
	out := rank.NewImage(w, h, depth)

	// fast paths for images that are already grey
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			for x, v := range row {
				out.Pix[y*w+x] = scaleFrom8(v, depth)
			}
		}
		return out, nil
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := src.Gray16At(b.Min.X+x, b.Min.Y+y).Y
				if depth == rank.Depth8 {
					v >>= 8
				}
				out.Pix[y*w+x] = v
			}
		}
		return out, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b_, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Rec. 709 luminance on 16-bit channels
			lum := math.Round(0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b_))
			v := uint16(clampFloat(lum, 0, 0xffff))
			if depth == rank.Depth8 {
				v >>= 8
			}
			out.Pix[y*w+x] = v
		}
	}
	return out, nil
}

func scaleFrom8(v uint8, depth rank.Depth) uint16 {
	if depth == rank.Depth16 {
		return uint16(v) * 257
	}
	return uint16(v)
}

// FromRank wraps a rank.Image as *image.Gray or *image.Gray16 for encoding.
func FromRank(m *rank.Image) image.Image {
	if m == nil {
		return nil
	}
	r := image.Rect(0, 0, m.Width, m.Height)
	if m.Depth == rank.Depth16 {
		out := image.NewGray16(r)
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				out.SetGray16(x, y, color.Gray16{Y: m.Pix[y*m.Width+x]})
			}
		}
		return out
	}
	out := image.NewGray(r)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.Pix[y*out.Stride+x] = uint8(m.Pix[y*m.Width+x])
		}
	}
	return out
}

// CloneRank returns a copy of m.
func CloneRank(m *rank.Image) *rank.Image {
	if m == nil {
		return nil
	}
	out := rank.NewImage(m.Width, m.Height, m.Depth)
	copy(out.Pix, m.Pix)
	return out
}

// clampFloat clamps v to [lo,hi]
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
