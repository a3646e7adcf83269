package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// Preview size limits. The cell size is reduced until both preview sides
// fit within MaxPreviewDim; a grid wider than MaxPreviewDim renders at one
// pixel per cell.
const (
	MaxCellPixels = 64
	MaxPreviewDim = 4096
)

// Fill is one solid rectangle on a cell grid, in cell units.
type Fill struct {
	X, Y          int
	Width, Height int
	Color         RGB
}

// PreviewResult contains a rendered preview encoded as base64 PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	CellPixels  int    `json:"cell_pixels"`
}

// RenderPreview paints fills onto a transparent cols x rows cell grid and
// scales each cell to cellPixels square pixels, clamped to the preview size
// limits. The result reports the cell size actually used.
//
// When gridColorHex is non-empty a one-pixel line is drawn on every cell
// boundary, which makes individual merged blocks visible. An unparseable grid
// color falls back to semi-transparent red.
func RenderPreview(cols, rows int, fills []Fill, cellPixels int, gridColorHex string) (*PreviewResult, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("nothing to render: grid is %dx%d", cols, rows)
	}
	cellPixels = clampCellPixels(cellPixels, cols, rows)

	cells := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for _, f := range fills {
		c := color.NRGBA{R: f.Color.R, G: f.Color.G, B: f.Color.B, A: 255}
		rect := image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height).Intersect(cells.Rect)
		draw.Draw(cells, rect, image.NewUniform(c), image.Point{}, draw.Src)
	}

	out := imaging.Resize(cells, cols*cellPixels, rows*cellPixels, imaging.NearestNeighbor)

	if gridColorHex != "" {
		gridColor, err := parseHexColor(gridColorHex)
		if err != nil {
			gridColor = color.NRGBA{255, 0, 0, 128}
		}
		drawBlockOutlines(out, fills, cellPixels, gridColor)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		CellPixels:  cellPixels,
	}, nil
}

func clampCellPixels(cellPixels, cols, rows int) int {
	if cellPixels > MaxCellPixels {
		cellPixels = MaxCellPixels
	}
	if limit := MaxPreviewDim / cols; cellPixels > limit {
		cellPixels = limit
	}
	if limit := MaxPreviewDim / rows; cellPixels > limit {
		cellPixels = limit
	}
	if cellPixels < 1 {
		cellPixels = 1
	}
	return cellPixels
}

// drawBlockOutlines traces the border of every fill one pixel inside its
// footprint. Points outside img are ignored by SetNRGBA.
func drawBlockOutlines(img *image.NRGBA, fills []Fill, cellPixels int, c color.NRGBA) {
	for _, f := range fills {
		x0, y0 := f.X*cellPixels, f.Y*cellPixels
		x1 := (f.X+f.Width)*cellPixels - 1
		y1 := (f.Y+f.Height)*cellPixels - 1
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y0, c)
			img.SetNRGBA(x, y1, c)
		}
		for y := y0; y <= y1; y++ {
			img.SetNRGBA(x0, y, c)
			img.SetNRGBA(x1, y, c)
		}
	}
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
