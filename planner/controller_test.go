package planner

import (
	"bytes"
	"testing"

	"github.com/bloodmagesoftware/arspace/hittest"
	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/render"
	"github.com/bloodmagesoftware/arspace/view"
)

var (
	onWidth  = plan.Vec2{X: 200, Y: 52} // measurement "1"
	onHeight = plan.Vec2{X: 50, Y: 200} // measurement "2"
	nowhere  = plan.Vec2{X: 200, Y: 200}
)

type change struct{ previous, current string }

func newController(t *testing.T, opts ...Option) (*Controller, *[]change) {
	t.Helper()
	c, err := New(plan.Default("living-room"), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var changes []change
	c.OnSelect(func(previous, current string) {
		changes = append(changes, change{previous, current})
	})
	return c, &changes
}

func TestClickSelection(t *testing.T) {
	tests := []struct {
		name   string
		toggle TogglePolicy
		clicks []plan.Vec2
		want   string
		events int
	}{
		{name: "hit selects", clicks: []plan.Vec2{onWidth}, want: "1", events: 1},
		{name: "miss with nothing selected", clicks: []plan.Vec2{nowhere}, want: "", events: 0},
		{name: "miss clears", clicks: []plan.Vec2{onWidth, nowhere}, want: "", events: 2},
		{name: "hit replaces", clicks: []plan.Vec2{onWidth, onHeight}, want: "2", events: 2},
		{name: "reclick keeps", toggle: ToggleKeep, clicks: []plan.Vec2{onWidth, onWidth}, want: "1", events: 1},
		{name: "reclick clears", toggle: ToggleClear, clicks: []plan.Vec2{onWidth, onWidth}, want: "", events: 2},
		{name: "reclick clears then selects", toggle: ToggleClear, clicks: []plan.Vec2{onWidth, onWidth, onWidth}, want: "1", events: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, changes := newController(t, WithToggle(tt.toggle))

			var got string
			for _, p := range tt.clicks {
				got = c.Click(p)
			}

			if got != tt.want {
				t.Errorf("Click returned %q, want %q", got, tt.want)
			}
			if c.View().SelectedMeasurementID != tt.want {
				t.Errorf("Selection is %q, want %q", c.View().SelectedMeasurementID, tt.want)
			}
			if len(*changes) != tt.events {
				t.Errorf("Expected %d change notifications, got %d: %v", tt.events, len(*changes), *changes)
			}
		})
	}
}

func TestListenerSeesPreviousSelection(t *testing.T) {
	c, changes := newController(t)

	c.Click(onWidth)
	c.Click(onHeight)
	c.Click(nowhere)

	want := []change{{"", "1"}, {"1", "2"}, {"2", ""}}
	if len(*changes) != len(want) {
		t.Fatalf("Expected %v, got %v", want, *changes)
	}
	for i := range want {
		if (*changes)[i] != want[i] {
			t.Errorf("change %d: expected %v, got %v", i, want[i], (*changes)[i])
		}
	}
}

func TestClickFollowsView(t *testing.T) {
	c, _ := newController(t)

	c.Pan(100, 0)
	if got := c.Click(onWidth); got != "1" {
		// (200, 52) now maps to (100, 52), still on the top wall measurement.
		t.Errorf("Expected hit on panned view, got %q", got)
	}

	c.ResetView()
	c.ZoomIn()
	c.ZoomIn()
	// At 1.44x the top measurement sits at y=72 on screen.
	if got := c.Click(plan.Vec2{X: 300, Y: 72}); got != "1" {
		t.Errorf("Expected hit on zoomed view, got %q", got)
	}
	if got := c.Click(plan.Vec2{X: 300, Y: 52}); got != "" {
		t.Errorf("Expected miss on the unzoomed position, got %q", got)
	}
}

func TestSelect(t *testing.T) {
	c, changes := newController(t)

	c.Select("4")
	if m, ok := c.Selected(); !ok || m.ID != "4" {
		t.Errorf("Expected measurement 4 selected, got %+v (ok=%v)", m, ok)
	}

	c.Select("missing")
	if _, ok := c.Selected(); ok {
		t.Error("Selecting an unknown id should clear the selection")
	}
	if len(*changes) != 2 {
		t.Errorf("Expected 2 change notifications, got %d", len(*changes))
	}
}

func TestViewOperationsKeepSelection(t *testing.T) {
	c, changes := newController(t)
	c.Click(onWidth)

	c.ZoomIn()
	c.ZoomOut()
	c.Pan(3, 4)
	c.ToggleGrid()
	c.ResetView()

	v := c.View()
	if v.SelectedMeasurementID != "1" {
		t.Errorf("Expected selection to survive view changes, got %q", v.SelectedMeasurementID)
	}
	if v.ShowGrid {
		t.Error("ResetView should not restore the grid")
	}
	if v.Scale != 1 || v.PanOffset != (plan.Vec2{}) {
		t.Errorf("Expected reset view, got scale %v pan %v", v.Scale, v.PanOffset)
	}
	if len(*changes) != 1 {
		t.Errorf("View operations should not notify, got %v", *changes)
	}
}

func TestNewOptions(t *testing.T) {
	initial := view.New()
	initial.Scale = 10
	initial.SelectedMeasurementID = "gone"

	c, _ := newController(t,
		WithView(initial),
		WithPicker(hittest.Picker{Threshold: 1, Policy: hittest.Closest}),
	)

	v := c.View()
	if v.Scale != view.MaxScale {
		t.Errorf("Expected scale clamped to %v, got %v", view.MaxScale, v.Scale)
	}
	if v.SelectedMeasurementID != "" {
		t.Errorf("Expected stale selection dropped, got %q", v.SelectedMeasurementID)
	}
	// onWidth is 2 units from the line, outside the tighter threshold.
	if got := c.Click(onWidth); got != "" {
		t.Errorf("Expected miss with threshold 1, got %q", got)
	}
}

func TestReplace(t *testing.T) {
	c, changes := newController(t)
	c.Click(onWidth)
	c.ZoomIn()

	same := plan.Default("rescan")
	if err := c.Replace(same); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if c.View().SelectedMeasurementID != "1" || len(*changes) != 1 {
		t.Errorf("Expected selection kept when its id survives, got %q after %v", c.View().SelectedMeasurementID, *changes)
	}

	fresh := plan.Default("rescan")
	for i := range fresh.Measurements {
		fresh.Measurements[i].ID = plan.NewID()
	}
	if err := c.Replace(fresh); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if c.View().SelectedMeasurementID != "" {
		t.Errorf("Expected selection cleared, got %q", c.View().SelectedMeasurementID)
	}
	if c.View().Scale == 1 {
		t.Error("Replace should keep the view")
	}
	if c.Plan() != fresh {
		t.Error("Expected the new plan to be installed")
	}

	broken := plan.Default("broken")
	broken.Measurements[0].Unit = ""
	if err := c.Replace(broken); err == nil {
		t.Error("Expected an error for an invalid plan")
	}
	if c.Plan() != fresh {
		t.Error("A rejected plan must not be installed")
	}
}

func TestNewRejectsInvalidPlan(t *testing.T) {
	p := plan.Default("broken")
	p.Measurements[0].Value = -1

	if _, err := New(p); err == nil {
		t.Fatal("Expected an error for an invalid plan")
	}
}

func TestSnapshotReflectsSelection(t *testing.T) {
	c, _ := newController(t)
	before := c.Snapshot(400, 350).Image()

	c.Click(onWidth)
	after := c.Snapshot(400, 350).Image()

	if bytes.Equal(before.Pix, after.Pix) {
		t.Error("Selecting a measurement should change the rendered output")
	}
}

func TestSnapshotUsesStyle(t *testing.T) {
	c, _ := newController(t)
	p := c.Plan()

	want := render.Snapshot(p, c.View(), 400, 350, render.DefaultStyle()).Image()
	if got := c.Snapshot(400, 350).Image(); !bytes.Equal(got.Pix, want.Pix) {
		t.Error("Expected the default style when none is given")
	}

	style := render.DefaultStyle()
	style.GridPitch = 40
	wide, _ := newController(t, WithStyle(style))
	if got := wide.Snapshot(400, 350).Image(); bytes.Equal(got.Pix, want.Pix) {
		t.Error("A wider grid pitch should change the rendered output")
	}
}

func TestParseTogglePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    TogglePolicy
		wantErr bool
	}{
		{in: "", want: ToggleKeep},
		{in: "keep", want: ToggleKeep},
		{in: "clear", want: ToggleClear},
		{in: "flip", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTogglePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTogglePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTogglePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
