package stdimg

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// LoadImage reads an image from disk and returns it with its format name.
// JPEGs are decoded with their EXIF orientation applied; PNG and TIFF keep
// 16-bit samples.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("unrecognised image %s: %w", path, err)
	}
	var img image.Image
	if format == "jpeg" {
		img, err = imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	} else {
		img, _, err = image.Decode(bytes.NewReader(b))
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

// LoadRank loads path and converts it to a grey rank.Image. depth 0 keeps
// the source depth.
func LoadRank(path string, depth rank.Depth) (*rank.Image, string, error) {
	img, format, err := LoadImage(path)
	if err != nil {
		return nil, "", err
	}
	m, err := ToRank(img, depth)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return m, format, nil
}

// SaveImage saves an image.Image to disk using format inferred from the filename extension.
// Supports .png, .jpg/.jpeg, .gif, .tif/.tiff and .bmp; anything else is written as PNG.
// Only PNG and TIFF keep 16-bit samples.
func SaveImage(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92})
	case ".gif":
		err = gif.Encode(&buf, img, nil)
	case ".tif", ".tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(&buf, img)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// SaveRank encodes a rank.Image to path.
func SaveRank(path string, m *rank.Image) error {
	return SaveImage(path, FromRank(m))
}

// Info returns a short description of a rank image.
func Info(m *rank.Image) string {
	if m == nil {
		return "no image"
	}
	return fmt.Sprintf("Depth: %v, Width: %d, Height: %d, Max: %d", m.Depth, m.Width, m.Height, m.MaxValue())
}
