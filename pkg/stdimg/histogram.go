package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// ComputeHistogram returns the global level counts of m with one bin per
// level up to bins (e.g. the max_bin the rank filters would use). Samples at
// or above bins are counted in the last bin.
func ComputeHistogram(m *rank.Image, bins int) []int {
	if m == nil {
		return nil
	}
	if bins <= 0 {
		bins = m.Depth.Max() + 1
	}
	hist := make([]int, bins)
	for _, v := range m.Pix {
		i := int(v)
		if i >= bins {
			i = bins - 1
		}
		hist[i]++
	}
	return hist
}

// Quantile returns the smallest level whose cumulative count is strictly
// greater than p of the total, the same cut rule the rank filters apply
// locally. p >= 1 returns the highest populated level.
func Quantile(hist []int, p float64) int {
	total := 0
	top := 0
	for i, c := range hist {
		total += c
		if c > 0 {
			top = i
		}
	}
	if total == 0 {
		return 0
	}
	mark := p * float64(total)
	cum := 0
	for i, c := range hist {
		cum += c
		if float64(cum) > mark {
			return i
		}
	}
	return top
}

// RenderHistogramImage renders hist as a white image with grey bars and
// red markers at the p0 and p1 quantiles (skipped when both are negative).
// width/height choose the output image size.
func RenderHistogramImage(hist []int, width, height int, p0, p1 float64) *image.NRGBA {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 120
	}
	bins := len(hist)
	// create image with white background
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = 255
		out.Pix[i+1] = 255
		out.Pix[i+2] = 255
		out.Pix[i+3] = 255
	}
	if bins == 0 {
		return out
	}
	maxv := 1
	for _, v := range hist {
		if v > maxv {
			maxv = v
		}
	}

	binToX := func(bin int) int {
		return int(math.Floor(float64(bin) * float64(width) / float64(bins)))
	}

	// draw each bin as a vertical line at x position
	for x := 0; x < width; x++ {
		bin := int(math.Floor(float64(x) * float64(bins) / float64(width)))
		if bin >= bins {
			bin = bins - 1
		}
		bh := int(math.Round(float64(hist[bin]) / float64(maxv) * float64(height-1)))
		for y := 0; y < bh; y++ {
			i := out.PixOffset(x, height-1-y)
			out.Pix[i+0] = 96
			out.Pix[i+1] = 96
			out.Pix[i+2] = 96
		}
	}

	if p0 < 0 && p1 < 0 {
		return out
	}
	for _, p := range []float64{p0, p1} {
		if p < 0 {
			continue
		}
		x := min(binToX(Quantile(hist, p)), width-1)
		for y := 0; y < height; y++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = 255
			out.Pix[i+1] = 0
			out.Pix[i+2] = 0
		}
	}
	return out
}
