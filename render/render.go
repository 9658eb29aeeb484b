// Package render draws a room floor plan and its measurement annotations.
//
// Render is a full redraw: it clears the surface and paints everything from
// the inputs, keeping no state between calls, so identical inputs always
// produce identical output on a given backend.
package render

import (
	"image/color"
	"math"

	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/view"
)

// Render paints room and measurements onto s as seen through v.
// The surface must have a positive size; room and measurements must be valid.
func Render(s Surface, room plan.Room, measurements []plan.Measurement, v view.State, style Style) {
	s.Clear(style.Background)
	s.SetTransform(v.PanOffset, v.Scale)

	if v.ShowGrid {
		drawGrid(s, v, style)
	}

	drawRoom(s, room, style)

	for _, m := range measurements {
		selected := v.SelectedMeasurementID != "" && m.ID == v.SelectedMeasurementID
		drawMeasurement(s, m, selected, style)
	}
}

// drawGrid covers the visible room-space rectangle with lines every GridPitch units.
func drawGrid(s Surface, v view.State, style Style) {
	width, height := s.Size()
	vis := v.Visible(width, height)
	pitch := style.GridPitch

	startX := math.Floor(vis.X/pitch) * pitch
	for x := startX; x <= vis.X+vis.Width; x += pitch {
		s.StrokeLine(plan.Vec2{X: x, Y: vis.Y}, plan.Vec2{X: x, Y: vis.Y + vis.Height}, style.GridWidth, style.Grid)
	}

	startY := math.Floor(vis.Y/pitch) * pitch
	for y := startY; y <= vis.Y+vis.Height; y += pitch {
		s.StrokeLine(plan.Vec2{X: vis.X, Y: y}, plan.Vec2{X: vis.X + vis.Width, Y: y}, style.GridWidth, style.Grid)
	}
}

func drawRoom(s Surface, room plan.Room, style Style) {
	outline := room.Outline()
	if len(outline) >= 3 {
		s.FillPolygon(outline, style.RoomFill)
		s.StrokePolygon(outline, style.WallWidth, style.Wall)
	}

	for _, d := range room.Doors {
		a, b := d.Span()
		s.StrokeLine(a, b, style.DoorWidth, style.Door)
	}

	for _, w := range room.Windows {
		s.StrokeRect(w.Rect(), style.WindowWidth, style.Window)
	}

	for _, o := range room.Outlets {
		s.FillCircle(o.Position, style.OutletRadius, style.Outlet)
	}
}

func drawMeasurement(s Surface, m plan.Measurement, selected bool, style Style) {
	col := style.Measurement
	width := style.LineWidth
	if selected {
		col = style.Highlight
		width = style.SelectedLineWidth
	}

	labelAt := m.LabelPoint()

	switch m.Kind {
	case plan.KindLinear:
		s.StrokeLine(*m.Start, *m.End, width, col)
		s.FillCircle(*m.Start, style.EndpointRadius, col)
		s.FillCircle(*m.End, style.EndpointRadius, col)
	case plan.KindArea:
		fill := col
		fill.A = style.AreaFillAlpha
		s.FillRect(*m.Bounds, fill)
		s.StrokeRect(*m.Bounds, width, col)
	default:
		s.FillCircle(*m.Position, style.EndpointRadius, col)
		labelAt.Y -= style.AnnotationOffset
	}

	drawLabel(s, m.Display(), labelAt, col, style)
}

// drawLabel draws text in a white box centered on at.
func drawLabel(s Surface, text string, at plan.Vec2, col color.NRGBA, style Style) {
	w, h := s.MeasureText(text)
	pad := style.LabelPadding
	box := plan.Rect{
		X:      at.X - w/2 - pad,
		Y:      at.Y - h/2 - pad,
		Width:  w + 2*pad,
		Height: h + 2*pad,
	}

	s.FillRect(box, style.LabelBackground)
	s.StrokeRect(box, 1, col)
	s.DrawText(text, at, col)
}
