package rank

// Bounds is the inclusive level range [Lo, Hi] retained for a statistic.
// Both ends are levels present in the histogram it was located on.
type Bounds struct {
	Lo, Hi int
}

// Locate finds the cut levels for fractions p0 <= p1 on h.
//
// Lo is the first level whose cumulative count is strictly greater than
// p0*N, so p0 = 0 selects the smallest present level. Hi is the first level
// whose cumulative count reaches p1*N; p1 = 1 selects the largest present
// level. When p0 = 1 no cumulative count can exceed N and Lo falls back to
// the largest present level. Hi is never reported below Lo.
//
// ok is false for an empty histogram.
func Locate(h *Histogram, p0, p1 float64) (b Bounds, ok bool) {
	n := h.total
	if n == 0 {
		return Bounds{}, false
	}
	top := h.highest()

	b.Lo = top
	loMark := p0 * float64(n)
	cum := 0
	for i, c := range h.counts {
		cum += c
		if float64(cum) > loMark {
			b.Lo = i
			break
		}
	}

	b.Hi = top
	if p1 < 1 {
		hiMark := p1 * float64(n)
		cum = 0
		for i, c := range h.counts {
			cum += c
			if float64(cum) >= hiMark {
				b.Hi = i
				break
			}
		}
	}
	if b.Hi < b.Lo {
		b.Hi = b.Lo
	}
	return b, true
}

// clipped returns the pixel count and the sum of levels inside b.
func clipped(h *Histogram, b Bounds) (count, sum int64) {
	for i := b.Lo; i <= b.Hi; i++ {
		c := int64(h.counts[i])
		count += c
		sum += c * int64(i)
	}
	return count, sum
}
