// Package blocks quantizes a decoded image onto a sampling grid and merges
// runs of similar color into axis-aligned rectangles ("blocks"), each of
// which becomes one placed object in the level editor.
//
// The pipeline is:
//
//	NewPlan   picks a sampling step and lays out the grid in world units
//	Merge     walks the grid row-major and grows maximal rectangles
//	ToWorld   converts a block's grid footprint into a world-space center
//
// # Determinism
//
// Merge visits cells top-to-bottom, left-to-right and always grows a block
// rightward first, then downward in full-width rows. The same buffer and
// options always yield the same block sequence in the same order.
//
// # Limits
//
// Two independent caps bound the output. SafetyCap bounds the number of
// sampled cells when the step is chosen automatically, which bounds the
// worst-case object count. SpanCap bounds the width and height of any single
// block, in cells, regardless of how much uniform color surrounds it.
package blocks

const (
	// BaseUnit is the editor's world-space size of one unscaled tile.
	BaseUnit = 30.0

	// OpacityThreshold is the minimum alpha for a pixel to be placed.
	// Pixels are either placed or skipped; partial alpha is not blended.
	OpacityThreshold = 200

	// SpanCap is the largest width or height, in cells, of a merged block.
	SpanCap = 5

	// SafetyCap is the largest sampled-cell count automatic step selection
	// allows, keeping the editor responsive after a bulk insert.
	SafetyCap = 10000

	// autoTargetDim is the number of cells the longer image side starts at
	// under automatic step selection.
	autoTargetDim = 200
)
