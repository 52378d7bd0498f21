package rank

import (
	"golang.org/x/sync/errgroup"
)

// runBands splits the rows of src into contiguous bands and filters them
// concurrently. Each band owns a private histogram and bootstraps its own
// window, so the bands share nothing mutable; output rows are disjoint.
func runBands(base slider, workers int) error {
	h := base.src.Height
	workers = clampInt(workers, 1, h)
	if workers == 1 {
		s := base
		s.hist = NewHistogram(base.maxBin)
		s.run(0, h)
		return nil
	}

	chunk := (h + workers - 1) / workers
	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += chunk {
		y0 := y0
		y1 := min(y0+chunk, h)
		s := base
		s.hist = NewHistogram(base.maxBin)
		g.Go(func() error {
			s.run(y0, y1)
			return nil
		})
	}
	return g.Wait()
}
