package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrBufferSize is returned when a pixel slice does not hold exactly
// width*height*4 bytes.
var ErrBufferSize = errors.New("pixel buffer size does not match dimensions")

// PixelBuffer is a read-only view over decoded, non-premultiplied RGBA pixels.
//
// Pix is row-major with 4 bytes per pixel and no row padding, so the pixel at
// (x, y) starts at offset (y*Width+x)*4. Use At rather than indexing Pix.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer wraps an existing RGBA byte slice. The slice is not copied.
//
// A slice whose length differs from width*height*4 is rejected with
// ErrBufferSize so a mismatched buffer fails fast instead of producing
// corrupted output further down the pipeline.
func NewPixelBuffer(width, height int, pix []uint8) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", width, height, ErrBufferSize)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%dx%d needs %d bytes, got %d: %w",
			width, height, width*height*4, len(pix), ErrBufferSize)
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any image.Image into a PixelBuffer.
//
// The image is cloned into non-premultiplied NRGBA form, so the buffer's
// origin is always (0,0) regardless of the source bounds.
func FromImage(img image.Image) *PixelBuffer {
	return fromNRGBA(imaging.Clone(img))
}

func fromNRGBA(src *image.NRGBA) *PixelBuffer {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if src.Stride == w*4 && len(src.Pix) == w*h*4 {
		return &PixelBuffer{Width: w, Height: h, Pix: src.Pix}
	}

	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		copy(pix[y*w*4:], row)
	}
	return &PixelBuffer{Width: w, Height: h, Pix: pix}
}

// At returns the pixel at (x, y). The boolean is false when the coordinate
// falls outside the image.
func (p *PixelBuffer) At(x, y int) (RGBA, bool) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return RGBA{}, false
	}
	i := (y*p.Width + x) * 4
	s := p.Pix[i : i+4 : i+4]
	return RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}, true
}

// Empty reports whether the buffer has no pixels.
func (p *PixelBuffer) Empty() bool {
	return p.Width == 0 || p.Height == 0
}

// NRGBA exposes the buffer as an *image.NRGBA sharing the same memory.
// The returned image must not be modified.
func (p *PixelBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.Pix,
		Stride: p.Width * 4,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}
