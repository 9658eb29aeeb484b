package plan

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPlanIsValid(t *testing.T) {
	p, err := New("living-room", DefaultRoom(), DefaultMeasurements())
	if err != nil {
		t.Fatalf("default plan should validate, got %v", err)
	}
	if len(p.Measurements) != 6 {
		t.Errorf("Expected 6 default measurements, got %d", len(p.Measurements))
	}
}

func TestRoomValidate(t *testing.T) {
	square := func() Room {
		return Room{Walls: []Wall{
			{Start: Vec2{X: 0, Y: 0}, End: Vec2{X: 10, Y: 0}},
			{Start: Vec2{X: 10, Y: 0}, End: Vec2{X: 10, Y: 10}},
			{Start: Vec2{X: 10, Y: 10}, End: Vec2{X: 0, Y: 10}},
			{Start: Vec2{X: 0, Y: 10}, End: Vec2{X: 0, Y: 0}},
		}}
	}

	tests := []struct {
		name    string
		room    func() Room
		wantErr string
	}{
		{
			name: "closed square",
			room: square,
		},
		{
			name: "too few walls",
			room: func() Room {
				r := square()
				r.Walls = r.Walls[:2]
				return r
			},
			wantErr: "at least 3 walls",
		},
		{
			name: "gap between walls",
			room: func() Room {
				r := square()
				r.Walls[1].Start = Vec2{X: 11, Y: 0}
				return r
			},
			wantErr: "room wall 1: ends at (10, 0)",
		},
		{
			name: "NaN coordinate",
			room: func() Room {
				r := square()
				r.Walls[2].End.X = math.NaN()
				return r
			},
			wantErr: "room wall 3: coordinates must be finite",
		},
		{
			name: "collinear walls",
			room: func() Room {
				return Room{Walls: []Wall{
					{Start: Vec2{X: 0, Y: 0}, End: Vec2{X: 5, Y: 0}},
					{Start: Vec2{X: 5, Y: 0}, End: Vec2{X: 10, Y: 0}},
					{Start: Vec2{X: 10, Y: 0}, End: Vec2{X: 0, Y: 0}},
				}}
			},
			wantErr: "zero area",
		},
		{
			name: "zero width door",
			room: func() Room {
				r := square()
				r.Doors = []Door{{Position: Vec2{X: 2, Y: 10}}}
				return r
			},
			wantErr: "room door 1: width is 0",
		},
		{
			name: "negative window height",
			room: func() Room {
				r := square()
				r.Windows = []Window{{Position: Vec2{X: 2, Y: 0}, Width: 3, Height: -1}}
				return r
			},
			wantErr: "room window 1: height is -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.room().Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestMeasurementValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Measurement
		wantErr string
	}{
		{
			name: "valid linear",
			m:    Measurement{ID: "a", Kind: KindLinear, Start: &Vec2{}, End: &Vec2{X: 1}, Value: 1, Unit: "ft"},
		},
		{
			name:    "linear without end",
			m:       Measurement{ID: "a", Kind: KindLinear, Start: &Vec2{}, Value: 1, Unit: "ft"},
			wantErr: "needs start and end",
		},
		{
			name:    "linear with infinite start",
			m:       Measurement{ID: "a", Kind: KindLinear, Start: &Vec2{X: math.Inf(1)}, End: &Vec2{}, Value: 1, Unit: "ft"},
			wantErr: "must be finite",
		},
		{
			name:    "zero value",
			m:       Measurement{ID: "a", Kind: KindLinear, Start: &Vec2{}, End: &Vec2{X: 1}, Unit: "ft"},
			wantErr: "value is 0",
		},
		{
			name:    "NaN value",
			m:       Measurement{ID: "a", Kind: KindHeight, Position: &Vec2{}, Value: math.NaN(), Unit: "ft"},
			wantErr: "must be positive",
		},
		{
			name:    "missing unit",
			m:       Measurement{ID: "a", Kind: KindHeight, Position: &Vec2{}, Value: 2},
			wantErr: "unit is required",
		},
		{
			name:    "area without bounds",
			m:       Measurement{ID: "a", Kind: KindArea, Value: 2, Unit: "sq ft"},
			wantErr: "needs bounds",
		},
		{
			name:    "area with empty bounds",
			m:       Measurement{ID: "a", Kind: KindArea, Bounds: &Rect{Width: 5}, Value: 2, Unit: "sq ft"},
			wantErr: "bounds are 5x0",
		},
		{
			name:    "doorway without position",
			m:       Measurement{ID: "a", Kind: KindDoorway, Value: 36, Unit: "in"},
			wantErr: "doorway measurement needs a position",
		},
		{
			name:    "unknown kind",
			m:       Measurement{ID: "a", Kind: "volume", Value: 1, Unit: "cu ft"},
			wantErr: `unknown type "volume"`,
		},
		{
			name:    "missing id",
			m:       Measurement{Kind: KindAngle, Position: &Vec2{}, Value: 90, Unit: "°"},
			wantErr: "id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	ms := DefaultMeasurements()
	ms[1].ID = ms[0].ID

	_, err := New("dup", DefaultRoom(), ms)
	if err == nil {
		t.Fatal("Expected duplicate id error, got nil")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 1 || !strings.Contains(verrs[0].Message, "duplicate id (entries 1 and 2)") {
		t.Errorf("Unexpected findings: %v", verrs)
	}
}

func TestSaveLoadAssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans", "den.yaml")

	p := Default("den")
	p.Measurements[0].ID = ""
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "den" {
		t.Errorf("Expected name den, got %q", loaded.Name)
	}
	if loaded.Measurements[0].ID == "" {
		t.Error("Expected Load to assign an id to the id-less measurement")
	}
	if loaded.Measurements[1].ID != "2" {
		t.Errorf("Expected existing id 2 to be kept, got %q", loaded.Measurements[1].ID)
	}
	if got := loaded.Measurements[0].Display(); got != "12.5 ft" {
		t.Errorf("Expected display 12.5 ft, got %q", got)
	}
}

func TestLoadRejectsInvalidFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	fixture := `
room:
    walls:
        - start: {x: 0, y: 0}
          end: {x: 10, y: 0}
        - start: {x: 10, y: 0}
          end: {x: 10, y: 10}
        - start: {x: 10, y: 10}
          end: {x: 0, y: 0}
measurements:
    - id: m1
      type: linear
      start: {x: 0, y: 0}
      value: 3
      unit: ft
`
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err == nil {
		t.Fatalf("Expected validation error, got plan %+v", p)
	}
	if !strings.Contains(err.Error(), "measurement m1: linear measurement needs start and end") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLabelPoint(t *testing.T) {
	ms := DefaultMeasurements()

	tests := []struct {
		name string
		m    Measurement
		want Vec2
	}{
		{name: "linear midpoint", m: ms[0], want: Vec2{X: 200, Y: 50}},
		{name: "area center", m: ms[2], want: Vec2{X: 200, Y: 175}},
		{name: "height anchor", m: ms[3], want: Vec2{X: 300, Y: 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.LabelPoint(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
