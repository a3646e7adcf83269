package blocks

import (
	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
)

// Block is one merged rectangle of grid cells sharing a color within
// tolerance of its top-left cell.
type Block struct {
	// GX and GY are the grid coordinates of the top-left cell.
	GX int `json:"gx"`
	GY int `json:"gy"`

	// SpanX and SpanY are the block's size in cells, each in [1, SpanCap].
	SpanX int `json:"span_x"`
	SpanY int `json:"span_y"`

	// Color is the source pixel sampled at the top-left cell.
	Color imaging.RGB `json:"color"`

	// HSV is Color converted for the editor's absolute color override.
	HSV imaging.HSV `json:"hsv"`
}

// Cells returns the number of grid cells the block covers.
func (b Block) Cells() int {
	return b.SpanX * b.SpanY
}

// MergeOptions controls how Merge grows blocks.
type MergeOptions struct {
	// Tolerance is the largest per-channel difference from a block's
	// top-left color that a cell may have and still join the block.
	Tolerance int

	// Enabled turns merging on. When false every opaque cell becomes its
	// own 1x1 block.
	Enabled bool

	// SpanCap overrides the package SpanCap when positive.
	SpanCap int
}

// Merge walks plan's grid over pix and returns the blocks in row-major order
// of their top-left cells.
//
// A cell samples the source pixel at (gx*step, gy*step). Cells whose pixel is
// outside the image or has alpha below OpacityThreshold produce nothing. Each
// remaining cell not yet covered starts a block that grows rightward while
// the next cell matches, then downward one full-width row at a time while
// every cell of the row matches. Every opaque cell ends up in exactly one
// block.
func Merge(pix *imaging.PixelBuffer, plan Plan, opts MergeOptions) []Block {
	spanCap := opts.SpanCap
	if spanCap <= 0 {
		spanCap = SpanCap
	}

	g := newGrid(pix, plan)
	if g.width == 0 || g.height == 0 {
		return nil
	}

	var blocks []Block
	for gy := 0; gy < g.height; gy++ {
		for gx := 0; gx < g.width; gx++ {
			if g.visited(gx, gy) {
				continue
			}

			base, ok := g.sample(gx, gy)
			if !ok {
				g.mark(gx, gy, 1, 1)
				continue
			}

			spanX, spanY := 1, 1
			if opts.Enabled {
				for gx+spanX < g.width && spanX < spanCap &&
					g.matches(gx+spanX, gy, base, opts.Tolerance) {
					spanX++
				}
				for gy+spanY < g.height && spanY < spanCap &&
					g.rowMatches(gx, gy+spanY, spanX, base, opts.Tolerance) {
					spanY++
				}
			}

			g.mark(gx, gy, spanX, spanY)
			blocks = append(blocks, Block{
				GX:    gx,
				GY:    gy,
				SpanX: spanX,
				SpanY: spanY,
				Color: base,
				HSV:   imaging.RGBToHSV(base),
			})
		}
	}
	return blocks
}

// OpaqueCells counts the grid cells whose sampled pixel would be placed.
func OpaqueCells(pix *imaging.PixelBuffer, plan Plan) int {
	g := newGrid(pix, plan)
	n := 0
	for gy := 0; gy < g.height; gy++ {
		for gx := 0; gx < g.width; gx++ {
			if _, ok := g.sample(gx, gy); ok {
				n++
			}
		}
	}
	return n
}

// grid is a sampling view of a pixel buffer with a visited mask.
type grid struct {
	pix     *imaging.PixelBuffer
	step    int
	width   int
	height  int
	covered []bool
}

func newGrid(pix *imaging.PixelBuffer, plan Plan) *grid {
	return &grid{
		pix:     pix,
		step:    plan.Step,
		width:   plan.GridWidth,
		height:  plan.GridHeight,
		covered: make([]bool, plan.GridWidth*plan.GridHeight),
	}
}

// sample returns the color of cell (gx, gy), or false if the cell's pixel
// is outside the image or transparent.
func (g *grid) sample(gx, gy int) (imaging.RGB, bool) {
	c, ok := g.pix.At(gx*g.step, gy*g.step)
	if !ok || c.A < OpacityThreshold {
		return imaging.RGB{}, false
	}
	return c.RGB(), true
}

func (g *grid) visited(gx, gy int) bool {
	return g.covered[gy*g.width+gx]
}

func (g *grid) mark(gx, gy, spanX, spanY int) {
	for dy := 0; dy < spanY; dy++ {
		row := (gy + dy) * g.width
		for dx := 0; dx < spanX; dx++ {
			g.covered[row+gx+dx] = true
		}
	}
}

// matches reports whether cell (gx, gy) can join a block anchored on base.
func (g *grid) matches(gx, gy int, base imaging.RGB, tolerance int) bool {
	if g.visited(gx, gy) {
		return false
	}
	c, ok := g.sample(gx, gy)
	return ok && c.Within(base, tolerance)
}

func (g *grid) rowMatches(gx, gy, spanX int, base imaging.RGB, tolerance int) bool {
	for k := 0; k < spanX; k++ {
		if !g.matches(gx+k, gy, base, tolerance) {
			return false
		}
	}
	return true
}
