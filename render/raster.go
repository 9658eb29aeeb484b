package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/view"
)

// LabelFontSize is the label text size in points at 100% zoom.
const LabelFontSize = 12

var labelFont = mustParseFont(goregular.TTF)

func mustParseFont(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err) // should never happen with embedded font
	}
	return f
}

// Raster is an in-memory RGBA Surface backed by a gg context.
// Rendering onto it is deterministic and needs no display.
type Raster struct {
	dc    *gg.Context
	scale float64
}

// NewRaster returns a transparent raster surface of the given size.
func NewRaster(width, height int) *Raster {
	dc := gg.NewContext(width, height)
	// Faces cache glyphs and are not safe to share between contexts.
	dc.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{
		Size:    LabelFontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	}))
	return &Raster{dc: dc, scale: 1}
}

// Snapshot renders p through v onto a new raster of the given size.
func Snapshot(p *plan.Plan, v view.State, width, height int, style Style) *Raster {
	r := NewRaster(width, height)
	Render(r, p.Room, p.Measurements, v, style)
	return r
}

// Image returns the rendered pixels.
func (r *Raster) Image() *image.RGBA {
	return r.dc.Image().(*image.RGBA)
}

func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

func (r *Raster) Clear(c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) SetTransform(offset plan.Vec2, scale float64) {
	r.dc.Identity()
	r.dc.Translate(offset.X, offset.Y)
	r.dc.Scale(scale, scale)
	r.scale = scale
}

// gg strokes in device pixels, so widths are scaled here to follow the transform.
func (r *Raster) setStroke(width float64, c color.NRGBA) {
	r.dc.SetLineWidth(width * r.scale)
	r.dc.SetColor(c)
}

func (r *Raster) StrokeLine(a, b plan.Vec2, width float64, c color.NRGBA) {
	r.setStroke(width, c)
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
}

func (r *Raster) polygon(points []plan.Vec2) {
	r.dc.NewSubPath()
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
}

func (r *Raster) StrokePolygon(points []plan.Vec2, width float64, c color.NRGBA) {
	if len(points) < 2 {
		return
	}
	r.setStroke(width, c)
	r.polygon(points)
	r.dc.Stroke()
}

func (r *Raster) FillPolygon(points []plan.Vec2, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	r.dc.SetColor(c)
	r.polygon(points)
	r.dc.Fill()
}

func (r *Raster) FillRect(rect plan.Rect, c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.dc.Fill()
}

func (r *Raster) StrokeRect(rect plan.Rect, width float64, c color.NRGBA) {
	r.setStroke(width, c)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.dc.Stroke()
}

func (r *Raster) FillCircle(center plan.Vec2, radius float64, c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.dc.Fill()
}

func (r *Raster) MeasureText(s string) (float64, float64) {
	return r.dc.MeasureString(s)
}

func (r *Raster) DrawText(s string, center plan.Vec2, c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, center.X, center.Y, 0.5, 0.5)
}

// Format is a snapshot file encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatQOI Format = "qoi"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".qoi":
		return FormatQOI, nil
	default:
		return "", fmt.Errorf("unsupported snapshot extension %q (want .png or .qoi)", ext)
	}
}

// Encode writes the rendered image in the given format.
func (r *Raster) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatPNG:
		return r.dc.EncodePNG(w)
	case FormatQOI:
		return qoi.Encode(w, r.Image())
	default:
		return fmt.Errorf("unsupported snapshot format %q", f)
	}
}

// Export writes the image to path, picking the format from its extension.
func (r *Raster) Export(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Encode(f, format); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
