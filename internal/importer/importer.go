// Package importer runs the image-to-objects pipeline.
//
// Process runs one import synchronously. A Session runs imports on a
// background goroutine, one at a time, and reports each through a channel
// that yields exactly one Result.
package importer

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-blocks-mcp/internal/blocks"
	"github.com/ironsheep/image-blocks-mcp/internal/config"
	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
	"github.com/ironsheep/image-blocks-mcp/internal/objstring"
	"github.com/ironsheep/image-blocks-mcp/internal/placement"
)

// ErrDecode reports that the source image could not be read or decoded.
var ErrDecode = errors.New("image could not be decoded")

// Request describes one import.
type Request struct {
	// Path is read when Data is nil.
	Path string
	Data []byte

	Settings config.Settings

	// Origin is the scene position of the image center.
	Origin blocks.Point

	// ObjectID is the editor object type to place. 0 selects
	// objstring.DefaultObjectID.
	ObjectID int

	// Region restricts the import to part of the image. An invalid region
	// is ignored and the whole image is imported.
	Region *imaging.Region
}

// Result is the outcome of one import.
type Result struct {
	Plan       blocks.Plan
	Blocks     []blocks.Block
	Placements []placement.Placement

	// Objects is the encoded object string for bulk insertion.
	Objects string

	// OpaqueCells is the number of grid cells that produced output.
	OpaqueCells int

	Err error
}

// OK reports whether the import succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Count returns the number of objects produced.
func (r Result) Count() int {
	return len(r.Blocks)
}

// MergeRatio returns opaque cells per emitted object, or 0 when nothing was
// emitted.
func (r Result) MergeRatio() float64 {
	if len(r.Blocks) == 0 {
		return 0
	}
	return float64(r.OpaqueCells) / float64(len(r.Blocks))
}

// Message returns the user-facing notification for the result.
func (r Result) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Import failed: %v", r.Err)
	}
	return fmt.Sprintf("Import complete: %d objects (step %d, %dx%d grid, %.1f cells/object)",
		r.Count(), r.Plan.Step, r.Plan.GridWidth, r.Plan.GridHeight, r.MergeRatio())
}

// Deliver places the result's objects through sink, in block order.
func (r Result) Deliver(sink placement.Sink) (int, error) {
	return placement.Deliver(sink, r.Placements)
}

// Process runs the whole pipeline on the calling goroutine.
func Process(req Request, decoder imaging.Decoder) Result {
	if decoder == nil {
		decoder = imaging.DefaultDecoder
	}

	data := req.Data
	if data == nil {
		b, err := os.ReadFile(req.Path)
		if err != nil {
			return Result{Err: fmt.Errorf("%w: %w", ErrDecode, err)}
		}
		data = b
	}

	pix, err := decoder.Decode(data)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}

	if req.Region != nil {
		cropped, err := imaging.Crop(pix, *req.Region)
		if err != nil {
			log.Printf("Ignoring import region: %v", err)
		} else {
			pix = cropped
		}
	}

	settings := req.Settings.Validate()
	plan := blocks.NewPlan(pix.Width, pix.Height, settings.Step, settings.AutoSafety, settings.VisualScale)
	merged := blocks.Merge(pix, plan, blocks.MergeOptions{
		Tolerance: settings.Tolerance,
		Enabled:   settings.Merge,
	})

	objectID := req.ObjectID
	if objectID == 0 {
		objectID = objstring.DefaultObjectID
	}
	layout := placement.Layout{
		Plan:        plan,
		Origin:      req.Origin,
		TypeID:      objectID,
		VisualScale: settings.VisualScale,
	}
	placements := layout.PlaceAll(merged)

	objects, err := placement.Encode(placements)
	if err != nil {
		return Result{Plan: plan, Err: err}
	}

	return Result{
		Plan:        plan,
		Blocks:      merged,
		Placements:  placements,
		Objects:     objects,
		OpaqueCells: blocks.Coverage(merged),
	}
}
