package render

import "image/color"

// Style holds the colors and dimensions the renderer draws with.
// Sizes are in room-space units and scale with zoom.
type Style struct {
	Background color.NRGBA
	Grid       color.NRGBA
	GridPitch  float64
	GridWidth  float64

	Wall      color.NRGBA
	WallWidth float64
	RoomFill  color.NRGBA

	Door         color.NRGBA
	DoorWidth    float64
	Window       color.NRGBA
	WindowWidth  float64
	Outlet       color.NRGBA
	OutletRadius float64

	Measurement       color.NRGBA
	Highlight         color.NRGBA
	AreaFillAlpha     uint8
	LineWidth         float64
	SelectedLineWidth float64
	EndpointRadius    float64

	LabelBackground color.NRGBA
	LabelPadding    float64
	// AnnotationOffset lifts the label of an anchored measurement
	// (height, angle, doorway) above its marker.
	AnnotationOffset float64
}

// Default palette
var (
	ColorBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorGrid       = color.NRGBA{R: 229, G: 231, B: 235, A: 255} // #e5e7eb
	ColorWall       = color.NRGBA{R: 55, G: 65, B: 81, A: 255}    // #374151
	ColorRoomFill   = color.NRGBA{R: 99, G: 102, B: 241, A: 26}   // indigo, ~10% opacity
	ColorDoor       = color.NRGBA{R: 245, G: 158, B: 11, A: 255}  // #f59e0b
	ColorWindow     = color.NRGBA{R: 14, G: 165, B: 233, A: 255}  // #0ea5e9
	ColorOutlet     = color.NRGBA{R: 16, G: 185, B: 129, A: 255}  // #10b981
	ColorMeasure    = color.NRGBA{R: 59, G: 130, B: 246, A: 255}  // #3b82f6
	ColorHighlight  = color.NRGBA{R: 239, G: 68, B: 68, A: 255}   // #ef4444
)

// DefaultStyle returns the planner's standard look.
func DefaultStyle() Style {
	return Style{
		Background: ColorBackground,
		Grid:       ColorGrid,
		GridPitch:  20,
		GridWidth:  1,

		Wall:      ColorWall,
		WallWidth: 4,
		RoomFill:  ColorRoomFill,

		Door:         ColorDoor,
		DoorWidth:    6,
		Window:       ColorWindow,
		WindowWidth:  2,
		Outlet:       ColorOutlet,
		OutletRadius: 4,

		Measurement:       ColorMeasure,
		Highlight:         ColorHighlight,
		AreaFillAlpha:     40,
		LineWidth:         2,
		SelectedLineWidth: 3,
		EndpointRadius:    4,

		LabelBackground:  ColorBackground,
		LabelPadding:     4,
		AnnotationOffset: 16,
	}
}
