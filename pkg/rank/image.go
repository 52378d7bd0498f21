package rank

import "fmt"

// Depth is the sample width of an Image.
type Depth uint8

const (
	Depth8  Depth = 8
	Depth16 Depth = 16
)

// MaxBinCeiling is the largest bin count a histogram can be asked to track.
const MaxBinCeiling = 1 << 16

// Max returns the largest value representable at this depth.
func (d Depth) Max() int {
	switch d {
	case Depth8:
		return 0xff
	case Depth16:
		return 0xffff
	}
	return 0
}

func (d Depth) valid() bool { return d == Depth8 || d == Depth16 }

func (d Depth) String() string {
	switch d {
	case Depth8:
		return "uint8"
	case Depth16:
		return "uint16"
	}
	return fmt.Sprintf("Depth(%d)", uint8(d))
}

// Image is a single-channel integer image stored row-major. Samples of an
// 8-bit image never exceed 255.
type Image struct {
	Width, Height int
	Depth         Depth
	Pix           []uint16
}

// NewImage allocates a zeroed image.
func NewImage(width, height int, depth Depth) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Depth:  depth,
		Pix:    make([]uint16, width*height),
	}
}

// At returns the sample at (x, y).
func (m *Image) At(x, y int) int {
	return int(m.Pix[y*m.Width+x])
}

// Set stores v at (x, y), saturating to the image depth.
func (m *Image) Set(x, y, v int) {
	m.Pix[y*m.Width+x] = uint16(clampInt(v, 0, m.Depth.Max()))
}

// MaxValue returns the largest sample in the image.
func (m *Image) MaxValue() int {
	mx := 0
	for _, v := range m.Pix {
		if int(v) > mx {
			mx = int(v)
		}
	}
	return mx
}

// SameShape reports whether o has the same width and height as m.
func (m *Image) SameShape(o *Image) bool {
	return o != nil && m.Width == o.Width && m.Height == o.Height
}

func (m *Image) validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrImageShape)
	}
	if m.Width <= 0 || m.Height <= 0 || len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("%w: %dx%d with %d samples", ErrImageShape, m.Width, m.Height, len(m.Pix))
	}
	if !m.Depth.valid() {
		return fmt.Errorf("%w: %v", ErrDepth, m.Depth)
	}
	return nil
}

// ResolveMaxBin returns the histogram size for img: 256 for 8-bit images,
// and the observed maximum plus one for 16-bit images. ceiling bounds the
// 16-bit bin count; values <= 0 mean MaxBinCeiling.
func ResolveMaxBin(img *Image, ceiling int) (int, error) {
	if err := img.validate(); err != nil {
		return 0, err
	}
	if img.Depth == Depth8 {
		return 256, nil
	}
	if ceiling <= 0 || ceiling > MaxBinCeiling {
		ceiling = MaxBinCeiling
	}
	n := max(img.MaxValue()+1, 2)
	if n > ceiling {
		return 0, fmt.Errorf("%w: image maximum %d needs %d bins, ceiling is %d", ErrMaxBin, n-1, n, ceiling)
	}
	return n, nil
}
