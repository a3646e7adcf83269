package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
)

func decodePreview(t *testing.T, result *PreviewResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	return img
}

func rgbaAt(img image.Image, x, y int) RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestRenderPreview(t *testing.T) {
	fills := []Fill{
		{X: 0, Y: 0, Width: 2, Height: 1, Color: RGB{255, 0, 0}},
		{X: 0, Y: 1, Width: 1, Height: 1, Color: RGB{0, 0, 255}},
	}

	result, err := RenderPreview(3, 2, fills, 4, "")
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	if result.Width != 12 || result.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 12x8", result.Width, result.Height)
	}
	if result.MimeType != "image/png" || result.CellPixels != 4 {
		t.Errorf("metadata: got %s/%d", result.MimeType, result.CellPixels)
	}

	img := decodePreview(t, result)
	if got := rgbaAt(img, 6, 2); got != (RGBA{255, 0, 0, 255}) {
		t.Errorf("merged block pixel: got %v, want red", got)
	}
	if got := rgbaAt(img, 1, 6); got != (RGBA{0, 0, 255, 255}) {
		t.Errorf("single block pixel: got %v, want blue", got)
	}
	if got := rgbaAt(img, 10, 6); got.A != 0 {
		t.Errorf("uncovered cell should be transparent, got %v", got)
	}
}

func TestRenderPreview_Outlines(t *testing.T) {
	fills := []Fill{{X: 0, Y: 0, Width: 2, Height: 2, Color: RGB{0, 0, 0}}}

	result, err := RenderPreview(2, 2, fills, 5, "#00FF00")
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	img := decodePreview(t, result)

	if got := rgbaAt(img, 0, 4); got != (RGBA{0, 255, 0, 255}) {
		t.Errorf("outline pixel: got %v, want green", got)
	}
	if got := rgbaAt(img, 9, 9); got != (RGBA{0, 255, 0, 255}) {
		t.Errorf("far corner pixel: got %v, want green", got)
	}
	if got := rgbaAt(img, 5, 5); got != (RGBA{0, 0, 0, 255}) {
		t.Errorf("interior pixel: got %v, want black", got)
	}
}

func TestRenderPreview_InvalidGridColor(t *testing.T) {
	fills := []Fill{{X: 0, Y: 0, Width: 1, Height: 1, Color: RGB{1, 1, 1}}}
	result, err := RenderPreview(1, 1, fills, 3, "invalid")
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	if result.ImageBase64 == "" {
		t.Error("ImageBase64 is empty")
	}
}

func TestRenderPreview_EmptyGrid(t *testing.T) {
	if _, err := RenderPreview(0, 5, nil, 4, ""); err == nil {
		t.Error("expected error for empty grid")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
		a       uint8
		wantErr bool
	}{
		{"#FF0000", 255, 0, 0, 255, false},
		{"00FF00", 0, 255, 0, 255, false},
		{"#0000FF80", 0, 0, 255, 128, false},
		{"", 0, 0, 0, 0, true},
		{"#FFF", 0, 0, 0, 0, true},
		{"#GGGGGG", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := parseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
				t.Errorf("got %v, want (%d,%d,%d,%d)", c, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestRenderPreview_ClampsCellPixels(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		cellPixels int
		want       int
	}{
		{"huge request", 2, 1, 1 << 30, MaxCellPixels},
		{"wide grid", 1000, 1, 64, 4},
		{"tall grid", 1, 2048, 8, 2},
		{"grid wider than limit", 5000, 1, 8, 1},
		{"zero request", 3, 3, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fills := []Fill{{X: 0, Y: 0, Width: 1, Height: 1, Color: RGB{1, 2, 3}}}
			result, err := RenderPreview(tt.cols, tt.rows, fills, tt.cellPixels, "")
			if err != nil {
				t.Fatalf("RenderPreview failed: %v", err)
			}
			if result.CellPixels != tt.want {
				t.Errorf("CellPixels: got %d, want %d", result.CellPixels, tt.want)
			}
			if result.Width != tt.cols*tt.want || result.Height != tt.rows*tt.want {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					result.Width, result.Height, tt.cols*tt.want, tt.rows*tt.want)
			}
		})
	}
}
