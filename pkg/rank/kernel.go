package rank

import (
	"fmt"
	"strings"
)

// Kernel identifies the statistic computed over the clipped neighbourhood.
// The choice is made once per filter call.
type Kernel int

const (
	KernelAutolevel Kernel = iota
	KernelGradient
	KernelMean
	KernelSubtractMean
	KernelEnhanceContrast
	KernelPercentile
	KernelPop
	KernelSum
	KernelThreshold
)

var kernelNames = [...]string{
	KernelAutolevel:       "autolevel",
	KernelGradient:        "gradient",
	KernelMean:            "mean",
	KernelSubtractMean:    "subtract_mean",
	KernelEnhanceContrast: "enhance_contrast",
	KernelPercentile:      "percentile",
	KernelPop:             "pop",
	KernelSum:             "sum",
	KernelThreshold:       "threshold",
}

func (k Kernel) String() string {
	if k < 0 || int(k) >= len(kernelNames) {
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
	return kernelNames[k]
}

// Valid reports whether k is one of the defined kernels.
func (k Kernel) Valid() bool {
	return k >= 0 && int(k) < len(kernelNames)
}

// SingleFraction reports whether the kernel only uses p0 (p1 is ignored).
func (k Kernel) SingleFraction() bool {
	return k == KernelPercentile || k == KernelThreshold
}

// Kernels lists every kernel in declaration order.
func Kernels() []Kernel {
	out := make([]Kernel, len(kernelNames))
	for i := range out {
		out[i] = Kernel(i)
	}
	return out
}

// ParseKernel accepts a kernel name in snake, kebab or camel case, with or
// without the "_percentile" suffix ("mean", "mean_percentile",
// "subtract-mean", "enhanceContrast").
func ParseKernel(name string) (Kernel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	if n != "percentile" {
		n = strings.TrimSuffix(n, "percentile")
	}
	for i, kn := range kernelNames {
		if strings.ReplaceAll(kn, "_", "") == n {
			return Kernel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

// kernelFunc computes one output value from the histogram h, the located
// bounds b, the centre pixel value c and the bin count maxBin. The caller
// saturates the result to the output depth.
type kernelFunc func(h *Histogram, b Bounds, c, maxBin int) int

var kernelFuncs = [...]kernelFunc{
	KernelAutolevel:       autolevel,
	KernelGradient:        gradient,
	KernelMean:            mean,
	KernelSubtractMean:    subtractMean,
	KernelEnhanceContrast: enhanceContrast,
	KernelPercentile:      percentile,
	KernelPop:             pop,
	KernelSum:             sum,
	KernelThreshold:       threshold,
}

func (k Kernel) fn() kernelFunc {
	return kernelFuncs[k]
}

func autolevel(_ *Histogram, b Bounds, c, maxBin int) int {
	delta := b.Hi - b.Lo
	if delta == 0 {
		return 0
	}
	v := int64(c-b.Lo) * int64(maxBin-1) / int64(delta)
	return clampInt(int(v), 0, maxBin-1)
}

func gradient(_ *Histogram, b Bounds, _, _ int) int {
	return b.Hi - b.Lo
}

func mean(h *Histogram, b Bounds, _, _ int) int {
	n, s := clipped(h, b)
	if n == 0 {
		return 0
	}
	return int(s / n)
}

func subtractMean(h *Histogram, b Bounds, c, maxBin int) int {
	n, s := clipped(h, b)
	if n == 0 {
		return 0
	}
	// halve the signed difference so it fits around mid-range
	v := float64(c-int(s/n))*0.5 + float64(maxBin/2)
	return clampInt(int(v), 0, maxBin-1)
}

func enhanceContrast(_ *Histogram, b Bounds, c, _ int) int {
	if c-b.Lo < b.Hi-c {
		return b.Lo
	}
	return b.Hi
}

func percentile(_ *Histogram, b Bounds, _, _ int) int {
	return b.Lo
}

func pop(h *Histogram, b Bounds, _, _ int) int {
	n, _ := clipped(h, b)
	return int(n)
}

func sum(h *Histogram, b Bounds, _, _ int) int {
	_, s := clipped(h, b)
	return int(s)
}

func threshold(_ *Histogram, b Bounds, c, maxBin int) int {
	if c > b.Lo {
		return maxBin - 1
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
