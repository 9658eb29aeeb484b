package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/hittest"
	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/planner"
)

var (
	pickView    viewFlags
	pickClosest bool
)

var pickCmd = &cobra.Command{
	Use:   "pick {plan} {x} {y}",
	Short: "Show which measurement a click would select",
	Long: `Hit-tests a click at screen position (x, y) against the plan's linear
measurements through the given view and prints the resulting selection.
With --select the click is applied on top of an existing selection, so
the configured re-click toggle policy is visible.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parsing x: %w", err)
		}
		y, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("parsing y: %w", err)
		}

		s, err := openSession(args[0])
		if err != nil {
			return err
		}

		opts, err := s.controllerOptions()
		if err != nil {
			return err
		}
		if pickClosest {
			picker, _ := s.config.Picker()
			picker.Policy = hittest.Closest
			opts = append(opts, planner.WithPicker(picker))
		}

		controller, err := planner.New(s.plan, append(opts, planner.WithView(pickView.state()))...)
		if err != nil {
			return err
		}

		screen := plan.Vec2{X: x, Y: y}
		room := controller.View().ScreenToRoom(screen)
		selected := controller.Click(screen)

		out := cmd.OutOrStdout()
		if selected == "" {
			fmt.Fprintf(out, "no selection at (%g, %g), room (%g, %g)\n", x, y, room.X, room.Y)
			return nil
		}
		m, _ := controller.Selected()
		fmt.Fprintf(out, "%s\t%s\n", m.ID, describeMeasurement(m))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickView.register(pickCmd)
	pickCmd.Flags().BoolVar(&pickClosest, "closest", false, "Select the nearest measurement instead of the first one in list order")
}
