package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/planner"
)

var (
	renderOutput string
	renderWidth  int
	renderHeight int
	renderView   viewFlags
)

var renderCmd = &cobra.Command{
	Use:   "render {plan}",
	Short: "Render a plan to an image",
	Long: `Renders the plan through the given view onto an offscreen canvas and
writes it as PNG or QOI, chosen by the output file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}

		width, height := s.config.Canvas.Width, s.config.Canvas.Height
		if cmd.Flags().Changed("width") {
			width = renderWidth
		}
		if cmd.Flags().Changed("height") {
			height = renderHeight
		}
		if width <= 0 || height <= 0 {
			return fmt.Errorf("canvas size %dx%d must be positive", width, height)
		}

		opts, err := s.controllerOptions()
		if err != nil {
			return err
		}
		v := renderView.state()
		if v.SelectedMeasurementID != "" {
			if _, ok := s.plan.Find(v.SelectedMeasurementID); !ok {
				log.Printf("warning: no measurement with id %q to highlight", v.SelectedMeasurementID)
			}
		}
		controller, err := planner.New(s.plan, append(opts, planner.WithView(v))...)
		if err != nil {
			return err
		}

		if err := controller.Snapshot(width, height).Export(renderOutput); err != nil {
			return fmt.Errorf("rendering %s: %w", s.plan.Name, err)
		}

		log.Printf("rendered %s (%dx%d) to %s", s.plan.Name, width, height, renderOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (.png or .qoi)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Canvas width in pixels (default from arspace.yaml)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Canvas height in pixels (default from arspace.yaml)")
	renderView.register(renderCmd)
	_ = renderCmd.MarkFlagRequired("output")
}
