// Package rank implements local greyscale rank filters whose statistic is
// restricted to the [p0, p1] percentile range of each neighbourhood. The
// neighbourhood histogram is maintained incrementally as the window slides
// (Huang, Yang and Tang, "A fast two-dimensional median filtering
// algorithm", 1979), so the cost per pixel follows the footprint perimeter
// rather than its area.
package rank

import (
	"fmt"
	"math"
)

// Options are the per-call parameters shared by every kernel.
type Options struct {
	// Mask selects the pixels allowed to contribute to a neighbourhood
	// (row-major, same shape as the image). Nil includes every pixel.
	Mask []bool
	// ShiftX and ShiftY move the footprint centre; it must stay inside the
	// footprint.
	ShiftX, ShiftY int
	// P0 and P1 are the percentile fractions bounding the levels used.
	P0, P1 float64
	// MaxBin is the histogram size. Zero resolves it from the image.
	MaxBin int
	// Workers is the number of row bands filtered concurrently.
	Workers int
}

// DefaultOptions returns the unclipped configuration: p0 = 0, p1 = 1.
func DefaultOptions() Options {
	return Options{P0: 0, P1: 1, Workers: 1}
}

func (o Options) validate(k Kernel, src *Image) (maxBin int, err error) {
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrUnknownKernel, k)
	}
	if err := src.validate(); err != nil {
		return 0, err
	}
	p1 := o.P1
	if k.SingleFraction() {
		p1 = o.P0
	}
	if !unitFraction(o.P0) || !unitFraction(p1) || o.P0 > p1 {
		return 0, fmt.Errorf("%w: p0=%v p1=%v", ErrPercentileRange, o.P0, p1)
	}
	if o.Mask != nil && len(o.Mask) != src.Width*src.Height {
		return 0, fmt.Errorf("%w: %d entries for %dx%d image", ErrMaskShape, len(o.Mask), src.Width, src.Height)
	}
	maxBin = o.MaxBin
	if maxBin == 0 {
		if maxBin, err = ResolveMaxBin(src, 0); err != nil {
			return 0, err
		}
	}
	if maxBin < 0 || maxBin > MaxBinCeiling {
		return 0, fmt.Errorf("%w: %d", ErrMaxBin, maxBin)
	}
	if mx := src.MaxValue(); mx >= maxBin {
		return 0, fmt.Errorf("%w: %d bins cannot hold sample %d", ErrMaxBin, maxBin, mx)
	}
	return maxBin, nil
}

func unitFraction(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// Apply runs kernel k over src with footprint fp and writes the result into
// out, which must have the shape and depth of src. Parameters are checked
// before any pixel is touched; a rejected call leaves out unchanged.
//
// A neighbourhood with no included pixel (masked out, or entirely beyond the
// image border) yields 0 for every kernel.
func Apply(k Kernel, src *Image, fp Footprint, opts Options, out *Image) error {
	maxBin, err := opts.validate(k, src)
	if err != nil {
		return err
	}
	if err := fp.validate(); err != nil {
		return err
	}
	row, col, err := fp.Center(opts.ShiftX, opts.ShiftY)
	if err != nil {
		return err
	}
	if !src.SameShape(out) || len(out.Pix) != len(src.Pix) || out.Depth != src.Depth {
		return ErrOutputShape
	}

	p1 := opts.P1
	if k.SingleFraction() {
		p1 = opts.P0
	}
	base := slider{
		src:    src,
		out:    out,
		mask:   opts.Mask,
		nb:     newNeighbourhood(fp, row, col),
		kernel: k.fn(),
		p0:     opts.P0,
		p1:     p1,
		maxBin: maxBin,
	}
	return runBands(base, opts.Workers)
}

// Filter is Apply with a freshly allocated output image.
func Filter(k Kernel, src *Image, fp Footprint, opts Options) (*Image, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	out := NewImage(src.Width, src.Height, src.Depth)
	if err := Apply(k, src, fp, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AutolevelPercentile stretches each pixel between the p0 and p1 levels of
// its neighbourhood to the full [0, max_bin-1] range.
func AutolevelPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelAutolevel, src, fp, opts)
}

// GradientPercentile returns the span between the p0 and p1 levels.
func GradientPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelGradient, src, fp, opts)
}

// MeanPercentile returns the mean of the levels between p0 and p1.
func MeanPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelMean, src, fp, opts)
}

// SubtractMeanPercentile returns the pixel minus the clipped local mean,
// halved and offset to mid-range.
func SubtractMeanPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelSubtractMean, src, fp, opts)
}

// EnhanceContrastPercentile replaces each pixel by whichever of the p0 and
// p1 levels is closer.
func EnhanceContrastPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelEnhanceContrast, src, fp, opts)
}

// Percentile returns the p0 level of each neighbourhood. P1 is ignored.
func Percentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelPercentile, src, fp, opts)
}

// PopPercentile returns the number of pixels between the p0 and p1 levels.
func PopPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelPop, src, fp, opts)
}

// SumPercentile returns the sum of the levels between p0 and p1, saturated
// to the image depth.
func SumPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelSum, src, fp, opts)
}

// ThresholdPercentile sets pixels above the p0 level of their neighbourhood
// to max_bin-1 and the rest to 0. P1 is ignored.
func ThresholdPercentile(src *Image, fp Footprint, opts Options) (*Image, error) {
	return Filter(KernelThreshold, src, fp, opts)
}
