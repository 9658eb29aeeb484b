// Package view holds the pan/zoom/grid/selection state of a planner canvas
// and the named operations that mutate it.
package view

import (
	"github.com/bloodmagesoftware/arspace/plan"
)

const (
	// MinScale and MaxScale bound the zoom factor.
	MinScale = 0.5
	MaxScale = 3.0
	// ZoomStep is the factor applied by one ZoomIn or ZoomOut.
	ZoomStep = 1.2
)

// State controls how the room and measurements are currently rendered.
// The zero value is not usable; start from New.
type State struct {
	// Scale is the zoom factor, always within [MinScale, MaxScale].
	Scale float64 `yaml:"scale"`
	// PanOffset is the screen-space translation applied before scaling.
	PanOffset plan.Vec2 `yaml:"pan_offset"`
	ShowGrid  bool      `yaml:"show_grid"`
	// SelectedMeasurementID refers to a measurement by id; empty means no selection.
	SelectedMeasurementID string `yaml:"selected_measurement_id,omitempty"`
}

// New returns the initial view: 100% zoom, no pan, grid visible, nothing selected.
func New() State {
	return State{
		Scale:    1.0,
		ShowGrid: true,
	}
}

// ZoomIn multiplies the scale by ZoomStep, clamped to MaxScale.
func (s *State) ZoomIn() {
	s.Scale = clampScale(s.Scale * ZoomStep)
}

// ZoomOut divides the scale by ZoomStep, clamped to MinScale.
func (s *State) ZoomOut() {
	s.Scale = clampScale(s.Scale / ZoomStep)
}

// ResetView restores 100% zoom and removes any pan.
func (s *State) ResetView() {
	s.Scale = 1.0
	s.PanOffset = plan.Vec2{}
}

// ToggleGrid flips grid visibility.
func (s *State) ToggleGrid() {
	s.ShowGrid = !s.ShowGrid
}

// Pan moves the view by a screen-space delta.
func (s *State) Pan(dx, dy float64) {
	s.PanOffset.X += dx
	s.PanOffset.Y += dy
}

// SetScale sets the zoom factor, clamped to [MinScale, MaxScale].
func (s *State) SetScale(scale float64) {
	s.Scale = clampScale(scale)
}

// ScreenToRoom maps a screen point into room space by inverting
// the translate-then-scale transform.
func (s State) ScreenToRoom(p plan.Vec2) plan.Vec2 {
	return plan.Vec2{
		X: (p.X - s.PanOffset.X) / s.Scale,
		Y: (p.Y - s.PanOffset.Y) / s.Scale,
	}
}

// RoomToScreen maps a room-space point onto the screen.
func (s State) RoomToScreen(p plan.Vec2) plan.Vec2 {
	return plan.Vec2{
		X: p.X*s.Scale + s.PanOffset.X,
		Y: p.Y*s.Scale + s.PanOffset.Y,
	}
}

// Visible returns the room-space rectangle covered by a screen of the given size.
func (s State) Visible(width, height int) plan.Rect {
	min := s.ScreenToRoom(plan.Vec2{})
	max := s.ScreenToRoom(plan.Vec2{X: float64(width), Y: float64(height)})
	return plan.Rect{X: min.X, Y: min.Y, Width: max.X - min.X, Height: max.Y - min.Y}
}

func clampScale(scale float64) float64 {
	// NaN compares false against both bounds; treat it as the lower bound.
	if !(scale >= MinScale) {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}
