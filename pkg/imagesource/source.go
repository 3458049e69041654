// Package imagesource decodes image files into pixel matrices.
package imagesource

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"PPD/pkg/pixel"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageSource wraps every open or decode failure.
var ErrImageSource = errors.New("imagesource: cannot read image")

// Image is a decoded grayscale sample plane.
type Image struct {
	Path   string
	Format string // decoder name reported by image.Decode
	Matrix *pixel.Matrix
}

// Width returns the number of columns.
func (im *Image) Width() int { return im.Matrix.Cols() }

// Height returns the number of rows.
func (im *Image) Height() int { return im.Matrix.Rows() }

// Close releases the sample buffer.
func (im *Image) Close() error {
	im.Matrix.Release()
	return nil
}

// Decode reads an image from r and converts it to 8-bit luma.
func Decode(r io.Reader) (*pixel.Matrix, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageSource, err)
	}

	m, err := pixel.FromImage(img)
	if err != nil {
		return nil, format, err
	}
	return m, format, nil
}

// Load opens and decodes the image at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageSource, err)
	}
	defer f.Close()

	m, format, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Image{Path: path, Format: format, Matrix: m}, nil
}

// Dimensions returns the size of the image at path without decoding the
// sample plane.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrImageSource, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w: %v", path, ErrImageSource, err)
	}
	return cfg.Width, cfg.Height, nil
}
