package editor

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"

	"github.com/bloodmagesoftware/arspace/plan"
)

// layoutCanvas renders the room plan through the current view
func (e *Editor) layoutCanvas(gtx layout.Context) layout.Dimensions {
	e.handleCanvasInput(gtx)

	size := gtx.Constraints.Max
	if size.X <= 0 || size.Y <= 0 {
		return layout.Dimensions{Size: size}
	}

	// Clip all drawing operations to the canvas bounds
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	e.controller.Draw(NewCanvas(gtx, e.theme))

	return layout.Dimensions{Size: size}
}

// canvasTag is the pointer target of the canvas, separate from the editor's key target.
type canvasTag struct{ *Editor }

// handleCanvasInput selects on primary click, pans on secondary drag and zooms on scroll
func (e *Editor) handleCanvasInput(gtx layout.Context) {
	tag := canvasTag{e}

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, tag)
	area.Pop()

	bounds := image.Rectangle{Max: gtx.Constraints.Max}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}

		if ev, ok := ev.(pointer.Event); ok {
			e.handlePointer(ev, bounds)
		}
	}
}

func (e *Editor) handlePointer(ev pointer.Event, bounds image.Rectangle) {
	// Ignore events outside canvas bounds
	if !image.Pt(int(ev.Position.X), int(ev.Position.Y)).In(bounds) {
		return
	}

	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons == pointer.ButtonSecondary {
			e.isPanning = true
			e.lastMouseX = ev.Position.X
			e.lastMouseY = ev.Position.Y
		}
		if ev.Buttons == pointer.ButtonPrimary {
			e.controller.Click(plan.Vec2{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
		}

	case pointer.Release:
		if ev.Buttons&pointer.ButtonSecondary == 0 {
			e.isPanning = false
		}

	case pointer.Drag:
		if e.isPanning {
			dx := ev.Position.X - e.lastMouseX
			dy := ev.Position.Y - e.lastMouseY
			e.controller.Pan(float64(dx), float64(dy))
			e.lastMouseX = ev.Position.X
			e.lastMouseY = ev.Position.Y
		}

	case pointer.Scroll:
		// Scroll.Y is positive when scrolling up
		switch {
		case ev.Scroll.Y > 0:
			e.controller.ZoomIn()
		case ev.Scroll.Y < 0:
			e.controller.ZoomOut()
		}
	}
}
