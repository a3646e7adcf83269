package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Crop returns a new buffer holding only the pixels inside r.
//
// The region must lie within the buffer and have positive width and height.
func Crop(p *PixelBuffer, r Region) (*PixelBuffer, error) {
	if err := r.Validate(p.Width, p.Height); err != nil {
		return nil, err
	}

	cropped := imaging.Crop(p.NRGBA(), image.Rect(r.X1, r.Y1, r.X2, r.Y2))
	return fromNRGBA(cropped), nil
}

// Validate reports whether r lies within a width x height image and has
// positive width and height.
func (r Region) Validate(width, height int) error {
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > width || r.Y2 > height {
		return fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, width, height)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}

// Size returns the region's width and height.
func (r Region) Size() (int, int) {
	return r.X2 - r.X1, r.Y2 - r.Y1
}
