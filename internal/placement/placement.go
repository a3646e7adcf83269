// Package placement defines the boundary between an import and the editor
// that receives its objects.
//
// The editor is modelled as a Sink that places one object per call. Editors
// that only accept a bulk object string are served by BulkSink, which encodes
// placements into a single string and hands it over on Flush.
package placement

import (
	"fmt"

	"github.com/ironsheep/image-blocks-mcp/internal/blocks"
	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
	"github.com/ironsheep/image-blocks-mcp/internal/objstring"
)

// Placement is one object to place in the scene.
type Placement struct {
	TypeID   int          `json:"type_id"`
	Position blocks.Point `json:"position"`
	ScaleX   float64      `json:"scale_x"`
	ScaleY   float64      `json:"scale_y"`

	// HSV is the absolute color override. It reproduces the source color on
	// objects whose tint is otherwise multiplied by a channel color.
	HSV imaging.HSV `json:"hsv"`

	// Color is the raw tint for editors that apply it directly.
	Color imaging.RGB `json:"color"`
}

// Object returns the encodable form of p.
func (p Placement) Object() objstring.Object {
	return objstring.Object{
		TypeID: p.TypeID,
		X:      p.Position.X,
		Y:      p.Position.Y,
		HSV:    p.HSV,
		ScaleX: p.ScaleX,
		ScaleY: p.ScaleY,
	}
}

// Layout maps merged blocks to scene placements.
type Layout struct {
	Plan        blocks.Plan
	Origin      blocks.Point
	TypeID      int
	VisualScale float64
}

// Place returns the placement for b: centered on its footprint, translated
// by the layout origin and stretched to cover SpanX x SpanY cells.
func (l Layout) Place(b blocks.Block) Placement {
	return Placement{
		TypeID:   l.TypeID,
		Position: l.Plan.ToWorld(b).Add(l.Origin),
		ScaleX:   l.VisualScale * float64(b.SpanX),
		ScaleY:   l.VisualScale * float64(b.SpanY),
		HSV:      b.HSV,
		Color:    b.Color,
	}
}

// PlaceAll maps every block, preserving order.
func (l Layout) PlaceAll(bs []blocks.Block) []Placement {
	out := make([]Placement, len(bs))
	for i, b := range bs {
		out[i] = l.Place(b)
	}
	return out
}

// Handle identifies a placed object within a sink.
type Handle int

// Sink receives placements one at a time.
type Sink interface {
	Place(p Placement) (Handle, error)
}

// Deliver places ps in order and returns how many were placed before the
// first error.
func Deliver(sink Sink, ps []Placement) (int, error) {
	for i, p := range ps {
		if _, err := sink.Place(p); err != nil {
			return i, fmt.Errorf("placement %d: %w", i, err)
		}
	}
	return len(ps), nil
}

// Encode joins ps into one object string.
func Encode(ps []Placement) (string, error) {
	var b objstring.Builder
	for i, p := range ps {
		if err := b.Add(p.Object()); err != nil {
			return "", fmt.Errorf("placement %d: %w", i, err)
		}
	}
	return b.String(), nil
}
