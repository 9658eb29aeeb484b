// Package planner owns a measurement session: the plan, the view state,
// and the selection that clicks and view controls mutate.
package planner

import (
	"fmt"

	"github.com/bloodmagesoftware/arspace/hittest"
	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/render"
	"github.com/bloodmagesoftware/arspace/view"
)

// TogglePolicy decides what clicking the already-selected measurement does.
type TogglePolicy int

const (
	// ToggleKeep leaves the measurement selected.
	ToggleKeep TogglePolicy = iota
	// ToggleClear deselects it.
	ToggleClear
)

func (p TogglePolicy) String() string {
	switch p {
	case ToggleKeep:
		return "keep"
	case ToggleClear:
		return "clear"
	default:
		return fmt.Sprintf("TogglePolicy(%d)", int(p))
	}
}

// ParseTogglePolicy maps "keep" or "clear" to a TogglePolicy.
func ParseTogglePolicy(s string) (TogglePolicy, error) {
	switch s {
	case "", "keep":
		return ToggleKeep, nil
	case "clear":
		return ToggleClear, nil
	}
	return ToggleKeep, fmt.Errorf("unknown toggle policy %q (want keep or clear)", s)
}

// SelectionListener is told about every change of the selected measurement.
// An empty id means nothing is selected.
type SelectionListener func(previous, current string)

// Controller is the single owner of a session's state. It is not safe for
// concurrent use; drive it from one event loop.
type Controller struct {
	plan   *plan.Plan
	view   view.State
	picker hittest.Picker
	toggle TogglePolicy
	style  render.Style

	listeners []SelectionListener
}

// Option configures a Controller.
type Option func(*Controller)

// WithPicker sets the hit-test threshold and policy.
func WithPicker(p hittest.Picker) Option {
	return func(c *Controller) { c.picker = p }
}

// WithToggle sets what clicking the selected measurement does.
func WithToggle(t TogglePolicy) Option {
	return func(c *Controller) { c.toggle = t }
}

// WithStyle sets the render style.
func WithStyle(s render.Style) Option {
	return func(c *Controller) { c.style = s }
}

// WithView sets the initial view state. The scale is clamped into range.
func WithView(v view.State) Option {
	return func(c *Controller) {
		v.SetScale(v.Scale)
		c.view = v
	}
}

// New creates a controller for p. p is validated so rendering and
// hit-testing can rely on well-formed input.
func New(p *plan.Plan, opts ...Option) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.Name, err)
	}

	c := &Controller{
		plan:   p,
		view:   view.New(),
		picker: hittest.NewPicker(),
		toggle: ToggleKeep,
		style:  render.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if id := c.view.SelectedMeasurementID; id != "" {
		if _, ok := p.Find(id); !ok {
			c.view.SelectedMeasurementID = ""
		}
	}
	return c, nil
}

// Plan returns the session's plan. Callers must not modify it.
func (c *Controller) Plan() *plan.Plan {
	return c.plan
}

// View returns a copy of the current view state.
func (c *Controller) View() view.State {
	return c.view
}

// Selected returns the selected measurement, if any.
func (c *Controller) Selected() (plan.Measurement, bool) {
	if c.view.SelectedMeasurementID == "" {
		return plan.Measurement{}, false
	}
	return c.plan.Find(c.view.SelectedMeasurementID)
}

// Replace swaps in a new plan, for example after a rescan, keeping the view.
// The selection survives only if its id is still present.
func (c *Controller) Replace(p *plan.Plan) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("plan %s: %w", p.Name, err)
	}
	c.plan = p
	if _, ok := p.Find(c.view.SelectedMeasurementID); !ok {
		c.setSelection("")
	}
	return nil
}

// OnSelect registers a listener for selection changes.
func (c *Controller) OnSelect(l SelectionListener) {
	c.listeners = append(c.listeners, l)
}

// Click hit-tests a screen point and updates the selection: a hit on another
// measurement replaces the selection, a hit on the selected one applies the
// toggle policy, and a miss clears it. It returns the resulting selection.
func (c *Controller) Click(screen plan.Vec2) string {
	hit, ok := c.picker.Pick(c.plan.Measurements, c.view, screen)

	next := ""
	switch {
	case !ok:
		next = ""
	case hit.ID == c.view.SelectedMeasurementID && c.toggle == ToggleClear:
		next = ""
	default:
		next = hit.ID
	}

	c.setSelection(next)
	return next
}

// Select selects the measurement with the given id, for example from a
// history list. An unknown id or "" clears the selection.
func (c *Controller) Select(id string) {
	if _, ok := c.plan.Find(id); !ok {
		id = ""
	}
	c.setSelection(id)
}

func (c *Controller) setSelection(id string) {
	previous := c.view.SelectedMeasurementID
	if previous == id {
		return
	}
	c.view.SelectedMeasurementID = id
	for _, l := range c.listeners {
		l(previous, id)
	}
}

// ZoomIn zooms in one step.
func (c *Controller) ZoomIn() { c.view.ZoomIn() }

// ZoomOut zooms out one step.
func (c *Controller) ZoomOut() { c.view.ZoomOut() }

// ResetView restores the default zoom and pan.
func (c *Controller) ResetView() { c.view.ResetView() }

// ToggleGrid flips grid visibility.
func (c *Controller) ToggleGrid() { c.view.ToggleGrid() }

// Pan moves the view by a screen-space delta.
func (c *Controller) Pan(dx, dy float64) { c.view.Pan(dx, dy) }

// Draw redraws the whole session onto s.
func (c *Controller) Draw(s render.Surface) {
	render.Render(s, c.plan.Room, c.plan.Measurements, c.view, c.style)
}

// Snapshot renders the session onto a new raster of the given size.
func (c *Controller) Snapshot(width, height int) *render.Raster {
	return render.Snapshot(c.plan, c.view, width, height, c.style)
}
