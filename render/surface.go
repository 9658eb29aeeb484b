package render

import (
	"image/color"

	"github.com/bloodmagesoftware/arspace/plan"
)

// Surface is a 2D drawing target with a single current transform.
// All geometry passed to it, including line widths and radii, is in the
// space set by the last SetTransform call; Clear always covers the whole surface.
type Surface interface {
	// Size returns the surface dimensions in device pixels.
	Size() (width, height int)
	Clear(c color.NRGBA)
	// SetTransform replaces the current transform with translate(offset) then scale(scale).
	SetTransform(offset plan.Vec2, scale float64)

	StrokeLine(a, b plan.Vec2, width float64, c color.NRGBA)
	// StrokePolygon strokes the closed outline through points.
	StrokePolygon(points []plan.Vec2, width float64, c color.NRGBA)
	FillPolygon(points []plan.Vec2, c color.NRGBA)
	FillRect(r plan.Rect, c color.NRGBA)
	StrokeRect(r plan.Rect, width float64, c color.NRGBA)
	FillCircle(center plan.Vec2, radius float64, c color.NRGBA)

	// MeasureText returns the extent of s in the current space.
	MeasureText(s string) (width, height float64)
	// DrawText draws s centered on center.
	DrawText(s string, center plan.Vec2, c color.NRGBA)
}
