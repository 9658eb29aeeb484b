package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/planner"
	"github.com/bloodmagesoftware/arspace/project"
)

var rootCmd = &cobra.Command{
	Use:   "arspace",
	Short: "ARSpace - Room measurement planner",
	Long: `ARSpace draws room floor plans with their measurement annotations.
It opens plans in an interactive editor with pan, zoom and grid controls,
renders them headlessly to PNG or QOI, and answers which measurement a
click at a given point would select.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getProjectRoot returns the project root directory by looking for arspace.yaml.
func getProjectRoot() (string, error) {
	return project.FindProjectRoot()
}

// session is a loaded plan together with the project settings that apply to it.
type session struct {
	root     string
	config   *project.Config
	planPath string
	plan     *plan.Plan
}

// openSession resolves a plan argument. An argument ending in .yaml is a
// plan file loaded directly with default settings; anything else names a
// plan in the project's plans directory.
func openSession(arg string) (*session, error) {
	if strings.HasSuffix(arg, ".yaml") {
		if _, err := os.Stat(arg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("no such plan file %s", arg)
			}
			return nil, fmt.Errorf("loading plan %s: %w", arg, err)
		}
		p, err := plan.Load(arg)
		if err != nil {
			return nil, fmt.Errorf("loading plan %s: %w", arg, err)
		}
		return &session{
			root:     filepath.Dir(arg),
			config:   project.Default(p.Name),
			planPath: arg,
			plan:     p,
		}, nil
	}

	projectRoot, err := getProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("getting project root: %w", err)
	}

	config, err := project.LoadConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	planPath := config.PlanPath(projectRoot, arg)
	p, err := plan.Load(planPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("plan %q does not exist (create it with `arspace edit %s`)", arg, arg)
		}
		return nil, fmt.Errorf("loading plan %s: %w", arg, err)
	}

	return &session{root: projectRoot, config: config, planPath: planPath, plan: p}, nil
}

// controllerOptions turns the project settings into controller options.
func (s *session) controllerOptions() ([]planner.Option, error) {
	picker, err := s.config.Picker()
	if err != nil {
		return nil, err
	}
	toggle, err := s.config.Toggle()
	if err != nil {
		return nil, err
	}
	return []planner.Option{
		planner.WithPicker(picker),
		planner.WithToggle(toggle),
		planner.WithStyle(s.config.Style()),
	}, nil
}
