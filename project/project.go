package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bloodmagesoftware/arspace/hittest"
	"github.com/bloodmagesoftware/arspace/mock"
	"github.com/bloodmagesoftware/arspace/planner"
	"github.com/bloodmagesoftware/arspace/render"
)

const ConfigFileName = "arspace.yaml"

// Config represents the project configuration from arspace.yaml.
type Config struct {
	Name      string          `yaml:"name"`
	PlansDir  string          `yaml:"plans_dir"`
	Canvas    CanvasConfig    `yaml:"canvas"`
	HitTest   HitTestConfig   `yaml:"hit_test"`
	Selection SelectionConfig `yaml:"selection"`
	Scan      ScanConfig      `yaml:"scan"`
}

// CanvasConfig is the surface size in pixels used for editing and headless renders.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// GridPitch is the grid spacing in room units.
	GridPitch float64 `yaml:"grid_pitch"`
}

type HitTestConfig struct {
	// Policy is "first" or "closest".
	Policy    string  `yaml:"policy"`
	Threshold float64 `yaml:"threshold"`
}

type SelectionConfig struct {
	// Toggle is "keep" or "clear": what clicking the selected measurement does.
	Toggle string `yaml:"toggle"`
}

type ScanConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// Default returns the configuration `arspace init` writes.
func Default(name string) *Config {
	return &Config{
		Name:     name,
		PlansDir: "plans",
		Canvas: CanvasConfig{
			Width:     800,
			Height:    600,
			GridPitch: render.DefaultStyle().GridPitch,
		},
		HitTest: HitTestConfig{
			Policy:    hittest.FirstMatch.String(),
			Threshold: hittest.DefaultThreshold,
		},
		Selection: SelectionConfig{Toggle: planner.ToggleKeep.String()},
		Scan:      ScanConfig{Delay: mock.DefaultScanDelay},
	}
}

// FindProjectRoot walks up from the current working directory looking for arspace.yaml.
// Returns the directory containing arspace.yaml, or an error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return FindProjectRootFrom(cwd)
}

// FindProjectRootFrom is FindProjectRoot starting at dir.
func FindProjectRootFrom(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", ConfigFileName, start)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the arspace.yaml file from the given project root.
// Missing optional fields take their defaults.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	config := Default("")
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFileName, err)
	}

	return config, nil
}

// Validate checks required fields and that the policy names are known.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("'name' field is required")
	}
	if c.PlansDir == "" {
		return fmt.Errorf("'plans_dir' field is required")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if !(c.Canvas.GridPitch > 0) {
		return fmt.Errorf("canvas.grid_pitch is %g, must be positive", c.Canvas.GridPitch)
	}
	if !(c.HitTest.Threshold > 0) {
		return fmt.Errorf("hit_test.threshold is %g, must be positive", c.HitTest.Threshold)
	}
	if _, err := c.Picker(); err != nil {
		return err
	}
	if _, err := c.Toggle(); err != nil {
		return err
	}
	if c.Scan.Delay < 0 {
		return fmt.Errorf("scan.delay is %s, must not be negative", c.Scan.Delay)
	}
	return nil
}

// Save writes the config to arspace.yaml in projectRoot.
func (c *Config) Save(projectRoot string) error {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", ConfigFileName, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(4)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("writing %s: %w", ConfigFileName, err)
	}
	return enc.Close()
}

// Picker builds the hit-tester the config describes.
func (c *Config) Picker() (hittest.Picker, error) {
	policy, err := hittest.ParsePolicy(c.HitTest.Policy)
	if err != nil {
		return hittest.Picker{}, err
	}
	return hittest.Picker{Threshold: c.HitTest.Threshold, Policy: policy}, nil
}

// Toggle returns the configured re-click behavior.
func (c *Config) Toggle() (planner.TogglePolicy, error) {
	return planner.ParseTogglePolicy(c.Selection.Toggle)
}

// Style returns the render style with the configured grid pitch.
func (c *Config) Style() render.Style {
	style := render.DefaultStyle()
	style.GridPitch = c.Canvas.GridPitch
	return style
}

// PlanPath returns the fixture file for the named plan.
func (c *Config) PlanPath(projectRoot, name string) string {
	return filepath.Join(projectRoot, c.PlansDir, name+".yaml")
}
