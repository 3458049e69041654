package pixel

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// FromImage converts img to 8-bit luma and loads it into a new Matrix.
// Scanline y of the image becomes row y, pixel x of the scanline column x.
func FromImage(img image.Image) (*Matrix, error) {
	if img == nil {
		return nil, errors.New("pixel: nil image provided")
	}

	b := img.Bounds()
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
		b = gray.Bounds()
	}

	m, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("FromImage: %w", err)
	}

	for y := 0; y < m.rows; y++ {
		off := gray.PixOffset(b.Min.X, b.Min.Y+y)
		line := gray.Pix[off : off+m.cols]
		row := m.data[y*m.cols : (y+1)*m.cols]
		for x, v := range line {
			row[x] = int(v)
		}
	}

	return m, nil
}
