package imaging

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA is a non-premultiplied color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Within reports whether every channel of o differs from c by at most
// tolerance. A negative tolerance matches nothing.
func (c RGB) Within(o RGB, tolerance int) bool {
	return absDiff(c.R, o.R) <= tolerance &&
		absDiff(c.G, o.G) <= tolerance &&
		absDiff(c.B, o.B) <= tolerance
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// HSV is a color in hue/saturation/value form, in the units the editor's
// absolute color override expects.
type HSV struct {
	H float64 `json:"h"` // Hue: [0,360) degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: [0,1]
	V float64 `json:"v"` // Value: [0,1]
}

// RGBToHSV converts an 8-bit color to HSV.
//
// Hue comes from the six-sector formula keyed on the largest channel. A fully
// desaturated color (all channels equal) has hue 0, and black has saturation 0.
func RGBToHSV(c RGB) HSV {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, v := col.Hsv()
	if h >= 360 {
		h -= 360
	}
	return HSV{H: h, S: s, V: v}
}

// HSVToRGB is the inverse of RGBToHSV, rounding each channel to the nearest
// 8-bit value.
func HSVToRGB(hsv HSV) RGB {
	r, g, b := colorful.Hsv(hsv.H, hsv.S, hsv.V).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
