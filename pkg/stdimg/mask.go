package stdimg

import (
	"fmt"
	"image"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// MaskFromImage turns img into an inclusion mask for a width x height
// image: any pixel with non-zero luma is included.
func MaskFromImage(img image.Image, width, height int) ([]bool, error) {
	m, err := ToRank(img, rank.Depth16)
	if err != nil {
		return nil, err
	}
	if m.Width != width || m.Height != height {
		return nil, fmt.Errorf("%w: mask is %dx%d, image is %dx%d", rank.ErrMaskShape, m.Width, m.Height, width, height)
	}
	mask := make([]bool, len(m.Pix))
	for i, v := range m.Pix {
		mask[i] = v > 0
	}
	return mask, nil
}

// LoadMask reads a mask image from disk.
func LoadMask(path string, width, height int) ([]bool, error) {
	img, _, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return MaskFromImage(img, width, height)
}
