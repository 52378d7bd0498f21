package rank

import "fmt"

// Histogram holds exact per-level counts for the pixels currently inside a
// window. Levels run over [0, Bins()).
type Histogram struct {
	counts []int
	total  int
}

// NewHistogram returns an empty histogram tracking maxBin levels.
func NewHistogram(maxBin int) *Histogram {
	if maxBin <= 0 {
		panic(fmt.Sprintf("rank: histogram needs a positive bin count, got %d", maxBin))
	}
	return &Histogram{counts: make([]int, maxBin)}
}

// Add increments the count of level.
func (h *Histogram) Add(level int) {
	if level < 0 || level >= len(h.counts) {
		panic(fmt.Sprintf("rank: level %d outside histogram range [0,%d)", level, len(h.counts)))
	}
	h.counts[level]++
	h.total++
}

// Remove decrements the count of level. Removing a level that has no count
// means the add/remove pairing of the slider is broken, so it panics.
func (h *Histogram) Remove(level int) {
	if level < 0 || level >= len(h.counts) {
		panic(fmt.Sprintf("rank: level %d outside histogram range [0,%d)", level, len(h.counts)))
	}
	if h.counts[level] == 0 {
		panic(fmt.Sprintf("rank: histogram underflow at level %d", level))
	}
	h.counts[level]--
	h.total--
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int { return h.total }

// Count returns the count of a single level.
func (h *Histogram) Count(level int) int { return h.counts[level] }

// Bins returns the number of levels tracked (max_bin).
func (h *Histogram) Bins() int { return len(h.counts) }

// Reset clears every count so the histogram can be reused for a new band.
func (h *Histogram) Reset() {
	clear(h.counts)
	h.total = 0
}

// highest returns the highest level with a nonzero count, or -1 when empty.
func (h *Histogram) highest() int {
	if h.total == 0 {
		return -1
	}
	for i := len(h.counts) - 1; i >= 0; i-- {
		if h.counts[i] != 0 {
			return i
		}
	}
	return -1
}
