package plan

import (
	"strconv"
)

// Kind discriminates the measurement record types.
type Kind string

const (
	KindLinear  Kind = "linear"
	KindArea    Kind = "area"
	KindHeight  Kind = "height"
	KindAngle   Kind = "angle"
	KindDoorway Kind = "doorway"
)

// Known reports whether k is one of the supported measurement kinds.
func (k Kind) Known() bool {
	switch k {
	case KindLinear, KindArea, KindHeight, KindAngle, KindDoorway:
		return true
	}
	return false
}

type (
	// Room is the static floor plan a measurement session is drawn over.
	// It is constructed once per session and never mutated by the renderer.
	Room struct {
		// Walls is an ordered list of segments forming a closed polygon.
		// Each wall ends where the next one starts, the last one ends at the first start.
		Walls []Wall `yaml:"walls"`
		// Doors are drawn as thick strokes starting at Position.
		Doors []Door `yaml:"doors"`
		// Windows are drawn as stroked rectangles with their top-left corner at Position.
		Windows []Window `yaml:"windows"`
		// Outlets are drawn as small filled circles.
		Outlets []Outlet `yaml:"outlets"`
	}

	Wall struct {
		Start Vec2 `yaml:"start"`
		End   Vec2 `yaml:"end"`
	}

	Door struct {
		Position Vec2    `yaml:"position"`
		Width    float64 `yaml:"width"`
		// Vertical doors run down the Y axis instead of along X.
		Vertical bool `yaml:"vertical,omitempty"`
	}

	Window struct {
		Position Vec2    `yaml:"position"`
		Width    float64 `yaml:"width"`
		Height   float64 `yaml:"height"`
	}

	Outlet struct {
		Position Vec2   `yaml:"position"`
		Type     string `yaml:"type"`
	}

	// Measurement is a user-recorded annotation tied to canvas coordinates.
	// Which geometry fields are meaningful depends on Kind:
	// linear uses Start and End, area uses Bounds, every other kind uses Position.
	Measurement struct {
		ID       string  `yaml:"id"`
		Kind     Kind    `yaml:"type"`
		Start    *Vec2   `yaml:"start,omitempty"`
		End      *Vec2   `yaml:"end,omitempty"`
		Bounds   *Rect   `yaml:"bounds,omitempty"`
		Position *Vec2   `yaml:"position,omitempty"`
		Value    float64 `yaml:"value"`
		Unit     string  `yaml:"unit"`
		Label    string  `yaml:"label"`
	}

	// Vec2 is a point in canvas pixel space.
	Vec2 struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}

	// Rect is an axis-aligned rectangle anchored at its top-left corner.
	Rect struct {
		X      float64 `yaml:"x"`
		Y      float64 `yaml:"y"`
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	}
)

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Display returns the text shown in a measurement's label box, e.g. "12.5 ft".
func (m Measurement) Display() string {
	return strconv.FormatFloat(m.Value, 'f', -1, 64) + " " + m.Unit
}

// LabelPoint returns where the measurement's label box is centered:
// the segment midpoint for linear, the bounds center for area,
// and the anchor position for every other kind.
func (m Measurement) LabelPoint() Vec2 {
	switch m.Kind {
	case KindLinear:
		return Midpoint(*m.Start, *m.End)
	case KindArea:
		return m.Bounds.Center()
	default:
		return *m.Position
	}
}

// Outline returns the room polygon vertices in wall order.
func (r Room) Outline() []Vec2 {
	points := make([]Vec2, 0, len(r.Walls))
	for _, w := range r.Walls {
		points = append(points, w.Start)
	}
	return points
}

// Span returns the two endpoints of the door stroke.
func (d Door) Span() (Vec2, Vec2) {
	if d.Vertical {
		return d.Position, Vec2{X: d.Position.X, Y: d.Position.Y + d.Width}
	}
	return d.Position, Vec2{X: d.Position.X + d.Width, Y: d.Position.Y}
}

// Rect returns the window frame as a rectangle.
func (w Window) Rect() Rect {
	return Rect{X: w.Position.X, Y: w.Position.Y, Width: w.Width, Height: w.Height}
}
