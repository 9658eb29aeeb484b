package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/view"
)

// viewFlags describe a view state on the command line.
type viewFlags struct {
	scale    float64
	panX     float64
	panY     float64
	grid     bool
	selected string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.scale, "scale", 1.0, "Zoom factor, clamped to [0.5, 3]")
	cmd.Flags().Float64Var(&f.panX, "pan-x", 0, "Horizontal pan offset in screen pixels")
	cmd.Flags().Float64Var(&f.panY, "pan-y", 0, "Vertical pan offset in screen pixels")
	cmd.Flags().BoolVar(&f.grid, "grid", true, "Show the background grid")
	cmd.Flags().StringVar(&f.selected, "select", "", "ID of the measurement to highlight")
}

func (f *viewFlags) state() view.State {
	v := view.New()
	v.SetScale(f.scale)
	v.PanOffset = plan.Vec2{X: f.panX, Y: f.panY}
	v.ShowGrid = f.grid
	v.SelectedMeasurementID = f.selected
	return v
}
