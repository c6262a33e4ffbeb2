package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/layout"
)

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{name: "already on step", angle: 45, want: 45},
		{name: "rounds down", angle: 52, want: 45},
		{name: "rounds up", angle: 53, want: 60},
		{name: "zero", angle: 0, want: 0},
		{name: "full turn wraps", angle: 360, want: 0},
		{name: "over full turn", angle: 375, want: 15},
		{name: "negative wraps", angle: -15, want: 345},
		{name: "max step", angle: 345, want: 345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.NormalizeRotation(tt.angle))
		})
	}
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, float64(50), layout.SnapToGrid(49, 50))
	assert.Equal(t, float64(50), layout.SnapToGrid(74, 50))
	assert.Equal(t, float64(100), layout.SnapToGrid(75, 50))
	assert.Equal(t, float64(0), layout.SnapToGrid(12, 50))

	// No grid means no snapping.
	assert.Equal(t, float64(33), layout.SnapToGrid(33, 0))
}

func TestClampToScene(t *testing.T) {
	scene := layout.Scene{Width: 1500, Height: 1500}

	tests := []struct {
		name          string
		x, y          float64
		width, height float64
		wantX, wantY  float64
	}{
		{name: "inside is untouched", x: 100, y: 200, width: 100, height: 100, wantX: 100, wantY: 200},
		{name: "negative clamps to zero", x: -20, y: -5, width: 100, height: 100, wantX: 0, wantY: 0},
		{name: "right edge", x: 1450, y: 10, width: 100, height: 100, wantX: 1400, wantY: 10},
		{name: "bottom edge", x: 10, y: 1499, width: 100, height: 100, wantX: 10, wantY: 1400},
		{name: "exactly at limit", x: 1400, y: 1400, width: 100, height: 100, wantX: 1400, wantY: 1400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := scene.ClampToScene(tt.x, tt.y, tt.width, tt.height)
			assert.Equal(t, tt.wantX, gotX)
			assert.Equal(t, tt.wantY, gotY)
		})
	}
}

func TestFitZoom(t *testing.T) {
	scene := layout.Scene{Width: 1500, Height: 1500}

	// Fits the narrower dimension.
	assert.InDelta(t, 0.5, scene.FitZoom(750, 1500), 1e-9)
	assert.InDelta(t, 0.5, scene.FitZoom(1500, 750), 1e-9)

	// Never magnifies past 1.0.
	assert.Equal(t, 1.0, scene.FitZoom(3000, 3000))

	// Degenerate container falls back to 1.0.
	assert.Equal(t, 1.0, scene.FitZoom(0, 500))

	// Very small containers still respect the lower zoom bound.
	assert.Equal(t, layout.ZoomMin, scene.FitZoom(10, 10))
}

func TestStepZoom(t *testing.T) {
	assert.InDelta(t, 1.1, layout.StepZoom(1.0, 1), 1e-9)
	assert.InDelta(t, 0.9, layout.StepZoom(1.0, -1), 1e-9)

	// Bounded at both ends.
	assert.Equal(t, layout.ZoomMax, layout.StepZoom(2.0, 1))
	assert.Equal(t, layout.ZoomMin, layout.StepZoom(0.1, -1))

	// Repeated stepping stays on the step grid.
	zoom := 1.0
	for range 5 {
		zoom = layout.StepZoom(zoom, 1)
	}
	assert.InDelta(t, 1.5, zoom, 1e-9)
}
