package editor

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/render"
)

// Canvas is a render.Surface that records Gio operations into a frame.
// It is only valid for the frame whose context it was created with.
type Canvas struct {
	gtx       layout.Context
	theme     *material.Theme
	size      image.Point
	transform f32.Affine2D
}

// NewCanvas wraps gtx as a drawing surface covering gtx.Constraints.Max.
func NewCanvas(gtx layout.Context, theme *material.Theme) *Canvas {
	return &Canvas{
		gtx:   gtx,
		theme: theme,
		size:  gtx.Constraints.Max,
	}
}

func (c *Canvas) Size() (int, int) {
	return c.size.X, c.size.Y
}

func (c *Canvas) Clear(col color.NRGBA) {
	defer clip.Rect{Max: c.size}.Push(c.gtx.Ops).Pop()
	paint.Fill(c.gtx.Ops, col)
}

func (c *Canvas) SetTransform(offset plan.Vec2, scale float64) {
	s := float32(scale)
	c.transform = f32.Affine2D{}.
		Scale(f32.Point{}, f32.Point{X: s, Y: s}).
		Offset(pt(offset))
}

// push applies the room transform to everything drawn until the stack is popped.
func (c *Canvas) push() op.TransformStack {
	return op.Affine(c.transform).Push(c.gtx.Ops)
}

func pt(v plan.Vec2) f32.Point {
	return f32.Point{X: float32(v.X), Y: float32(v.Y)}
}

func (c *Canvas) fill(spec clip.PathSpec, col color.NRGBA) {
	paint.FillShape(c.gtx.Ops, col, clip.Outline{Path: spec}.Op())
}

func (c *Canvas) stroke(spec clip.PathSpec, width float64, col color.NRGBA) {
	paint.FillShape(c.gtx.Ops, col, clip.Stroke{Path: spec, Width: float32(width)}.Op())
}

func (c *Canvas) polygon(points []plan.Vec2) clip.PathSpec {
	var path clip.Path
	path.Begin(c.gtx.Ops)
	path.MoveTo(pt(points[0]))
	for _, p := range points[1:] {
		path.LineTo(pt(p))
	}
	path.Close()
	return path.End()
}

func (c *Canvas) rect(r plan.Rect) clip.PathSpec {
	return c.polygon([]plan.Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	})
}

func (c *Canvas) StrokeLine(a, b plan.Vec2, width float64, col color.NRGBA) {
	defer c.push().Pop()

	var path clip.Path
	path.Begin(c.gtx.Ops)
	path.MoveTo(pt(a))
	path.LineTo(pt(b))
	c.stroke(path.End(), width, col)
}

func (c *Canvas) StrokePolygon(points []plan.Vec2, width float64, col color.NRGBA) {
	if len(points) < 2 {
		return
	}
	defer c.push().Pop()
	c.stroke(c.polygon(points), width, col)
}

func (c *Canvas) FillPolygon(points []plan.Vec2, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	defer c.push().Pop()
	c.fill(c.polygon(points), col)
}

func (c *Canvas) FillRect(r plan.Rect, col color.NRGBA) {
	defer c.push().Pop()
	c.fill(c.rect(r), col)
}

func (c *Canvas) StrokeRect(r plan.Rect, width float64, col color.NRGBA) {
	defer c.push().Pop()
	c.stroke(c.rect(r), width, col)
}

// FillCircle approximates the circle with a 32-gon.
func (c *Canvas) FillCircle(center plan.Vec2, radius float64, col color.NRGBA) {
	defer c.push().Pop()

	const segments = 32
	var path clip.Path
	path.Begin(c.gtx.Ops)
	path.MoveTo(pt(plan.Vec2{X: center.X + radius, Y: center.Y}))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		path.LineTo(pt(plan.Vec2{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}))
	}
	path.Close()
	c.fill(path.End(), col)
}

// label lays text out in room units: one Sp is one unit before the transform.
func (c *Canvas) label(s string, col color.NRGBA) (layout.Context, material.LabelStyle) {
	gtx := c.gtx
	gtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	gtx.Constraints = layout.Constraints{Max: image.Point{X: math.MaxInt32, Y: math.MaxInt32}}

	l := material.Label(c.theme, unit.Sp(render.LabelFontSize), s)
	l.Color = col
	l.MaxLines = 1
	return gtx, l
}

func (c *Canvas) MeasureText(s string) (float64, float64) {
	gtx, l := c.label(s, color.NRGBA{})

	// Lay out into a discarded macro just to get the size.
	macro := op.Record(gtx.Ops)
	dims := l.Layout(gtx)
	macro.Stop()

	return float64(dims.Size.X), float64(dims.Size.Y)
}

func (c *Canvas) DrawText(s string, center plan.Vec2, col color.NRGBA) {
	gtx, l := c.label(s, col)

	macro := op.Record(gtx.Ops)
	dims := l.Layout(gtx)
	call := macro.Stop()

	defer c.push().Pop()
	topLeft := plan.Vec2{
		X: center.X - float64(dims.Size.X)/2,
		Y: center.Y - float64(dims.Size.Y)/2,
	}
	defer op.Affine(f32.Affine2D{}.Offset(pt(topLeft))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
