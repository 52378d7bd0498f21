package stdimg

import (
	"fmt"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// LocalThreshold applies a local mean threshold over footprint fp. Pixels
// above mean - offset become the depth maximum, otherwise 0. The mean only
// covers the levels between the p0 and p1 percentiles, so isolated outliers
// in the window do not shift the threshold. invert swaps the two outputs.
func LocalThreshold(src *rank.Image, fp rank.Footprint, p0, p1, offset float64, invert bool, workers int) (*rank.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	opts := rank.DefaultOptions()
	opts.P0, opts.P1, opts.Workers = p0, p1, workers
	mean, err := rank.MeanPercentile(src, fp, opts)
	if err != nil {
		return nil, err
	}
	out := rank.NewImage(src.Width, src.Height, src.Depth)
	top := uint16(src.Depth.Max())
	for i, v := range src.Pix {
		if (float64(v) > float64(mean.Pix[i])-offset) != invert {
			out.Pix[i] = top
		}
	}
	return out, nil
}
