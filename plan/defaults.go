package plan

// DefaultRoom returns the demonstration floor plan: a 300x250 living room
// with one door, two windows and three outlets.
func DefaultRoom() Room {
	return Room{
		Walls: []Wall{
			{Start: Vec2{X: 50, Y: 50}, End: Vec2{X: 350, Y: 50}},
			{Start: Vec2{X: 350, Y: 50}, End: Vec2{X: 350, Y: 300}},
			{Start: Vec2{X: 350, Y: 300}, End: Vec2{X: 50, Y: 300}},
			{Start: Vec2{X: 50, Y: 300}, End: Vec2{X: 50, Y: 50}},
		},
		Doors: []Door{
			{Position: Vec2{X: 160, Y: 300}, Width: 36},
		},
		Windows: []Window{
			{Position: Vec2{X: 110, Y: 46}, Width: 60, Height: 8},
			{Position: Vec2{X: 346, Y: 140}, Width: 8, Height: 60},
		},
		Outlets: []Outlet{
			{Position: Vec2{X: 56, Y: 150}, Type: "standard"},
			{Position: Vec2{X: 344, Y: 250}, Type: "standard"},
			{Position: Vec2{X: 250, Y: 294}, Type: "usb"},
		},
	}
}

// DefaultMeasurements returns the demonstration measurement set recorded
// over DefaultRoom, one record of every kind.
func DefaultMeasurements() []Measurement {
	return []Measurement{
		{
			ID:    "1",
			Kind:  KindLinear,
			Start: &Vec2{X: 50, Y: 50},
			End:   &Vec2{X: 350, Y: 50},
			Value: 12.5,
			Unit:  "ft",
			Label: "Living Room Width",
		},
		{
			ID:    "2",
			Kind:  KindLinear,
			Start: &Vec2{X: 50, Y: 50},
			End:   &Vec2{X: 50, Y: 300},
			Value: 10.4,
			Unit:  "ft",
			Label: "Living Room Length",
		},
		{
			ID:     "3",
			Kind:   KindArea,
			Bounds: &Rect{X: 50, Y: 50, Width: 300, Height: 250},
			Value:  130,
			Unit:   "sq ft",
			Label:  "Floor Area",
		},
		{
			ID:       "4",
			Kind:     KindHeight,
			Position: &Vec2{X: 300, Y: 90},
			Value:    9,
			Unit:     "ft",
			Label:    "Ceiling Height",
		},
		{
			ID:       "5",
			Kind:     KindDoorway,
			Position: &Vec2{X: 178, Y: 280},
			Value:    36,
			Unit:     "in",
			Label:    "Front Door",
		},
		{
			ID:       "6",
			Kind:     KindAngle,
			Position: &Vec2{X: 80, Y: 275},
			Value:    90,
			Unit:     "°",
			Label:    "Corner Angle",
		},
	}
}

// Default returns a plan built from DefaultRoom and DefaultMeasurements.
func Default(name string) *Plan {
	return &Plan{
		Name:         name,
		Room:         DefaultRoom(),
		Measurements: DefaultMeasurements(),
	}
}
