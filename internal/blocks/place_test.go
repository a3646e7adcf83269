package blocks

import (
	"testing"
)

func TestToWorld(t *testing.T) {
	// 4x4 grid of 30-unit cells: anchors at (-60, 60).
	plan := NewPlan(4, 4, 1, false, 1)

	tests := []struct {
		name  string
		block Block
		want  Point
	}{
		{"whole grid", Block{GX: 0, GY: 0, SpanX: 4, SpanY: 4}, Point{0, 0}},
		{"top-left cell", Block{GX: 0, GY: 0, SpanX: 1, SpanY: 1}, Point{-45, 45}},
		{"bottom-right cell", Block{GX: 3, GY: 3, SpanX: 1, SpanY: 1}, Point{45, -45}},
		{"wide strip", Block{GX: 1, GY: 2, SpanX: 3, SpanY: 1}, Point{15, -15}},
		{"tall strip", Block{GX: 0, GY: 1, SpanX: 1, SpanY: 3}, Point{-45, -15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.ToWorld(tt.block); got != tt.want {
				t.Errorf("ToWorld = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToWorld_ScaledCells(t *testing.T) {
	plan := NewPlan(2, 1, 1, false, 0.5)
	got := plan.ToWorld(Block{GX: 1, GY: 0, SpanX: 1, SpanY: 1})
	// cell size 15, anchors (-15, 7.5)
	if got != (Point{7.5, 0}) {
		t.Errorf("ToWorld = %+v, want {7.5 0}", got)
	}
}

func TestPoint_Add(t *testing.T) {
	if got := (Point{1, 2}).Add(Point{10, -20}); got != (Point{11, -18}) {
		t.Errorf("Add = %+v", got)
	}
}

func TestCoverage(t *testing.T) {
	blocks := []Block{{SpanX: 2, SpanY: 3}, {SpanX: 1, SpanY: 1}, {SpanX: 5, SpanY: 5}}
	if got := Coverage(blocks); got != 32 {
		t.Errorf("Coverage = %d, want 32", got)
	}
	if got := Coverage(nil); got != 0 {
		t.Errorf("Coverage(nil) = %d, want 0", got)
	}
}
