package cmd

import (
	"context"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/editor"
	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/planner"
	"github.com/bloodmagesoftware/arspace/project"
)

var editCmd = &cobra.Command{
	Use:   "edit {plan-name}",
	Short: "Open the specified plan in the editor",
	Long:  `Creates the plan from the sample living room if it doesn't exist, then opens the visual editor for that plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return cmd.Help()
		}
		planName := args[0]

		projectRoot, err := getProjectRoot()
		if err != nil {
			return err
		}
		config, err := project.LoadConfig(projectRoot)
		if err != nil {
			return err
		}

		planFilePath := config.PlanPath(projectRoot, planName)
		if _, err := os.Stat(planFilePath); os.IsNotExist(err) {
			log.Printf("creating plan %s", planFilePath)
			if err := plan.Default(planName).Save(planFilePath); err != nil {
				return err
			}
		}

		log.Printf("loading plan %s", planFilePath)
		s, err := openSession(planName)
		if err != nil {
			return err
		}
		opts, err := s.controllerOptions()
		if err != nil {
			return err
		}
		controller, err := planner.New(s.plan, opts...)
		if err != nil {
			return err
		}
		log.Printf("loaded plan %s with %d measurements", planFilePath, len(s.plan.Measurements))

		go func() {
			window := new(app.Window)
			window.Option(
				app.Title("ARSpace - "+planName),
				app.Size(unit.Dp(config.Canvas.Width+240), unit.Dp(config.Canvas.Height+68)),
			)
			err := run(window, planFilePath, controller, config)
			if err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

func run(window *app.Window, planFilePath string, controller *planner.Controller, config *project.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	theme := material.NewTheme()
	ed := editor.NewEditor(ctx, theme, planFilePath, controller, config.Scan.Delay, window.Invalidate)

	var ops op.Ops
	for {
		switch e := window.Event().(type) {
		case app.DestroyEvent:
			ed.CancelTasks()
			if ed.HasUnsavedChanges() {
				log.Printf("warning: closing with unsaved changes to %s", planFilePath)
			}
			return e.Err
		case app.FrameEvent:
			// This graphics context is used for managing the rendering state.
			gtx := app.NewContext(&ops, e)

			ed.Layout(gtx)

			// Pass the drawing operations to the GPU.
			e.Frame(gtx.Ops)

			if ed.ShouldClose() {
				window.Perform(system.ActionClose)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
}
