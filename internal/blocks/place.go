package blocks

// Point is a position in the editor's world space, Y increasing upward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// ToWorld returns the world-space center of b relative to the image center.
//
// Grid rows grow downward while world Y grows upward, so rows are
// subtracted from the top anchor.
func (p Plan) ToWorld(b Block) Point {
	return Point{
		X: p.AnchorX + float64(b.GX)*p.CellSize + float64(b.SpanX)*p.CellSize/2,
		Y: p.AnchorY - float64(b.GY)*p.CellSize - float64(b.SpanY)*p.CellSize/2,
	}
}

// Coverage sums the cells covered by blocks.
func Coverage(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		n += b.Cells()
	}
	return n
}
