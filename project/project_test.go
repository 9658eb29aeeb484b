package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bloodmagesoftware/arspace/hittest"
	"github.com/bloodmagesoftware/arspace/planner"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestFindProjectRootFrom(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "name: flat\n")

	nested := filepath.Join(root, "plans", "kitchen")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRootFrom(nested)
	if err != nil {
		t.Fatalf("FindProjectRootFrom failed: %v", err)
	}
	if got != root {
		t.Errorf("Expected %s, got %s", root, got)
	}

	if _, err := FindProjectRootFrom(t.TempDir()); err == nil {
		t.Error("Expected an error outside any project")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "name: flat\nhit_test:\n    policy: closest\nscan:\n    delay: 250ms\n")

	c, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if c.PlansDir != "plans" {
		t.Errorf("Expected default plans dir, got %q", c.PlansDir)
	}
	if c.Canvas.Width != 800 || c.Canvas.Height != 600 {
		t.Errorf("Expected default canvas 800x600, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if got := c.Style().GridPitch; got != 20 {
		t.Errorf("Expected default grid pitch 20, got %v", got)
	}
	if c.Scan.Delay != 250*time.Millisecond {
		t.Errorf("Expected scan delay 250ms, got %s", c.Scan.Delay)
	}

	p, err := c.Picker()
	if err != nil {
		t.Fatalf("Picker failed: %v", err)
	}
	if p.Policy != hittest.Closest || p.Threshold != hittest.DefaultThreshold {
		t.Errorf("Unexpected picker %+v", p)
	}

	toggle, err := c.Toggle()
	if err != nil || toggle != planner.ToggleKeep {
		t.Errorf("Expected keep toggle, got %v (%v)", toggle, err)
	}

	if got := c.PlanPath(root, "kitchen"); got != filepath.Join(root, "plans", "kitchen.yaml") {
		t.Errorf("Unexpected plan path %s", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "missing name", content: "plans_dir: plans\n", want: "'name' field is required"},
		{name: "bad canvas", content: "name: x\ncanvas:\n    width: 0\n    height: 10\n", want: "canvas size"},
		{name: "bad grid pitch", content: "name: x\ncanvas:\n    grid_pitch: 0\n", want: "grid_pitch"},
		{name: "bad threshold", content: "name: x\nhit_test:\n    threshold: -1\n", want: "threshold"},
		{name: "bad policy", content: "name: x\nhit_test:\n    policy: nearest\n", want: "hit-test policy"},
		{name: "bad toggle", content: "name: x\nselection:\n    toggle: flip\n", want: "toggle policy"},
		{name: "not yaml", content: "name: [\n", want: "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			_, err := LoadConfig(root)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()

	want := Default("flat")
	want.Selection.Toggle = "clear"
	want.Canvas.GridPitch = 40
	if err := want.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *got != *want {
		t.Errorf("Expected %+v, got %+v", *want, *got)
	}
}
