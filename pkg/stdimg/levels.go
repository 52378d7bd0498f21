package stdimg

import (
	"fmt"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// MedianFilter replaces each pixel by the median of the disk of the given
// radius around it, using the sliding-histogram rank engine.
func MedianFilter(src *rank.Image, radius, workers int) (*rank.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	if radius <= 0 {
		return CloneRank(src), nil
	}
	opts := rank.DefaultOptions()
	opts.P0 = 0.5
	opts.Workers = workers
	return rank.Percentile(src, rank.Disk(radius), opts)
}

// Despeckle removes small speckles; simple wrapper around MedianFilter with a small radius.
func Despeckle(src *rank.Image, radius, workers int) (*rank.Image, error) {
	if radius <= 0 {
		radius = 1
	}
	return MedianFilter(src, radius, workers)
}
