// Package layout implements the in-memory seat layout editing model: a
// session-scoped store of seats with selection and floor filtering, the
// geometry rules for dragging and zooming over a fixed-size scene, and an
// SVG projection of the current state.
package layout

import "math"

const (
	ZoomMin  = 0.1
	ZoomMax  = 2.0
	ZoomStep = 0.1

	RotationStep = 15
	RotationMax  = 345
)

// Scene is the fixed coordinate space seats are placed in, independent of
// any client viewport.
type Scene struct {
	Width    float64
	Height   float64
	GridSize float64
}

// NormalizeRotation rounds an angle to the nearest multiple of 15 degrees
// within [0, 345]. Free values may still arrive from stored data; this is
// only applied by the editor's angle control.
func NormalizeRotation(angle float64) float64 {
	normalized := math.Round(angle/RotationStep) * RotationStep

	normalized = math.Mod(normalized, 360)
	if normalized < 0 {
		normalized += 360
	}

	return normalized
}

// SnapToGrid rounds a scene coordinate to the nearest grid line.
func SnapToGrid(value, gridSize float64) float64 {
	if gridSize <= 0 {
		return value
	}

	return math.Round(value/gridSize) * gridSize
}

// ClampToScene keeps a seat's bounding box fully inside the scene:
// 0 <= x <= sceneWidth - width, same for y.
func (s Scene) ClampToScene(x, y, width, height float64) (float64, float64) {
	maxX := s.Width - width
	if maxX < 0 {
		maxX = 0
	}

	maxY := s.Height - height
	if maxY < 0 {
		maxY = 0
	}

	return math.Min(math.Max(x, 0), maxX), math.Min(math.Max(y, 0), maxY)
}

// Center returns the rotation center of a seat's bounding box.
func Center(x, y, width, height float64) (float64, float64) {
	return x + width/2, y + height/2
}

// ClampZoom bounds a zoom factor to [ZoomMin, ZoomMax].
func ClampZoom(zoom float64) float64 {
	return math.Min(math.Max(zoom, ZoomMin), ZoomMax)
}

// FitZoom computes the zoom that fits the whole scene into a container,
// never magnifying past 1.0.
func (s Scene) FitZoom(containerWidth, containerHeight float64) float64 {
	if containerWidth <= 0 || containerHeight <= 0 || s.Width <= 0 || s.Height <= 0 {
		return 1.0
	}

	fit := math.Min(containerWidth/s.Width, containerHeight/s.Height)

	return ClampZoom(math.Min(fit, 1.0))
}

// StepZoom moves a zoom factor by one step in the given direction and
// rounds to the step grid so repeated clicks don't accumulate float error.
func StepZoom(zoom float64, direction int) float64 {
	stepped := zoom + float64(direction)*ZoomStep
	stepped = math.Round(stepped/ZoomStep) * ZoomStep

	return ClampZoom(stepped)
}
