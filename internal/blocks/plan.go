package blocks

// Plan describes the sampling grid laid over an image and its placement in
// world space.
type Plan struct {
	// Step is the number of source pixels between neighbouring grid cells.
	Step int `json:"step"`

	// GridWidth and GridHeight are the grid dimensions in cells,
	// ceil(width/Step) and ceil(height/Step).
	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`

	// CellSize is the world-space edge length of one unmerged cell.
	CellSize float64 `json:"cell_size"`

	// AnchorX and AnchorY locate the grid's top-left corner relative to the
	// image center. Y increases upward in world space.
	AnchorX float64 `json:"anchor_x"`
	AnchorY float64 `json:"anchor_y"`
}

// NewPlan lays out the sampling grid for a width x height image.
//
// With autoSafety set the requested step is ignored and SafeStep picks one.
// Otherwise requestedStep is used, raised to 1 if smaller. NewPlan never
// fails; a zero-sized image yields an empty grid.
func NewPlan(width, height, requestedStep int, autoSafety bool, visualScale float64) Plan {
	step := requestedStep
	if autoSafety {
		step = SafeStep(width, height)
	}
	if step < 1 {
		step = 1
	}

	gw := ceilDiv(width, step)
	gh := ceilDiv(height, step)
	cell := BaseUnit * visualScale

	return Plan{
		Step:       step,
		GridWidth:  gw,
		GridHeight: gh,
		CellSize:   cell,
		AnchorX:    -float64(gw) * cell / 2,
		AnchorY:    float64(gh) * cell / 2,
	}
}

// SafeStep returns the smallest step, starting from one that brings the
// longer side down to about 200 cells, for which (width/step)*(height/step)
// does not exceed SafetyCap.
func SafeStep(width, height int) int {
	maxDim := width
	if height > maxDim {
		maxDim = height
	}

	step := ceilDiv(maxDim, autoTargetDim)
	if step < 1 {
		step = 1
	}
	for (width/step)*(height/step) > SafetyCap {
		step++
	}
	return step
}

// Cells returns the number of grid cells.
func (p Plan) Cells() int {
	return p.GridWidth * p.GridHeight
}

// Estimate is a pre-flight summary shown before an import runs.
type Estimate struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	Step    int `json:"step"`
	Objects int `json:"objects"`
}

// EstimateObjects predicts the object count for an import without reading
// any pixels. The figure is the unmerged full-cell count
// (width/step)*(height/step), an upper bound on merged output for images
// whose size is a multiple of the step.
func EstimateObjects(width, height, requestedStep int, autoSafety bool) Estimate {
	step := requestedStep
	if autoSafety {
		step = SafeStep(width, height)
	}
	if step < 1 {
		step = 1
	}
	return Estimate{
		Width:   width,
		Height:  height,
		Step:    step,
		Objects: (width / step) * (height / step),
	}
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/d + 1
}
