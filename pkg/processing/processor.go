package processing

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/menta2k/card-overlay/pkg/design"
	"github.com/menta2k/card-overlay/pkg/types"
)

// Processor renders diagnostic card previews
type Processor struct {
	config Config
}

// Config holds configuration for preview rendering
type Config struct {
	// Scale multiplies the reference card size in pixels
	Scale      float64
	Stroke     int
	Background color.NRGBA
	Frame      color.NRGBA
	Outline    color.NRGBA
	Center     color.NRGBA
}

// NewPreviewConfig returns the default colors with the given scale and stroke
func NewPreviewConfig(scale float64, stroke int) Config {
	return Config{
		Scale:      scale,
		Stroke:     stroke,
		Background: color.NRGBA{255, 255, 255, 255},
		Frame:      color.NRGBA{160, 160, 160, 255},
		Outline:    color.NRGBA{255, 204, 0, 255}, // photo box
		Center:     color.NRGBA{255, 0, 0, 255},
	}
}

// NewProcessor creates a new preview processor
func NewProcessor() *Processor {
	return &Processor{config: NewPreviewConfig(4, 2)}
}

// NewProcessorWithConfig creates a preview processor with custom configuration
func NewProcessorWithConfig(config Config) *Processor {
	if config.Scale <= 0 {
		config.Scale = 1
	}
	if config.Stroke <= 0 {
		config.Stroke = 1
	}
	return &Processor{config: config}
}

// CanvasSize returns the preview size in pixels
func (p *Processor) CanvasSize() (int, int) {
	w := int(math.Round(design.ReferenceWidth * p.config.Scale))
	h := int(math.Round(design.ReferenceHeight * p.config.Scale))
	return w, h
}

// PhotoRect returns the photo box in preview pixels
func (p *Processor) PhotoRect(params types.OverlayParams) image.Rectangle {
	s := p.config.Scale
	return types.PixelBox{
		Left:   params.Pixel.Left * s,
		Top:    params.Pixel.Top * s,
		Width:  params.Pixel.Width * s,
		Height: params.Pixel.Height * s,
	}.Rect()
}

// CreateDebugOverlay draws the card frame and, when the photo is visible, its
// outline in the overlay's shape. Photo pixels are never drawn.
func (p *Processor) CreateDebugOverlay(params types.OverlayParams) *image.NRGBA {
	w, h := p.CanvasSize()
	canvas := imaging.New(w, h, p.config.Background)
	stroke := p.config.Stroke

	drawBox(canvas, canvas.Bounds(), p.config.Frame, stroke)

	if !params.Visible {
		return canvas
	}

	r := p.PhotoRect(params)
	if r.Empty() {
		return canvas
	}

	switch params.Shape {
	case types.ShapeCircle:
		drawEllipse(canvas, r, p.config.Outline, stroke)
	case types.ShapeRounded:
		radius := int(math.Max(float64(stroke+1), 0.12*float64(minInt(r.Dx(), r.Dy()))))
		drawRoundedBox(canvas, r, radius, p.config.Outline, stroke)
	default:
		drawBox(canvas, r, p.config.Outline, stroke)
	}

	cross := int(math.Max(4, 0.05*float64(minInt(r.Dx(), r.Dy()))))
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	drawHLine(canvas, cy, cx-cross, cx+cross, p.config.Center)
	drawVLine(canvas, cx, cy-cross, cy+cross, p.config.Center)

	return canvas
}

// SaveImage saves an image to a file with the specified format and quality
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		return saveWebP(img, path, quality, lossless)
	case "png":
		return imaging.Save(img, path)
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func saveWebP(img image.Image, path string, quality int, lossless bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
	if err := webp.Encode(f, img, opts); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}

// Helper functions
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func drawBox(img *image.NRGBA, r image.Rectangle, c color.NRGBA, stroke int) {
	for s := 0; s < stroke; s++ {
		drawHLine(img, r.Min.Y+s, r.Min.X, r.Max.X, c)
		drawHLine(img, r.Max.Y-1-s, r.Min.X, r.Max.X, c)
		drawVLine(img, r.Min.X+s, r.Min.Y, r.Max.Y, c)
		drawVLine(img, r.Max.X-1-s, r.Min.Y, r.Max.Y, c)
	}
}

// drawEllipse strokes the ellipse inscribed in r
func drawEllipse(img *image.NRGBA, r image.Rectangle, c color.NRGBA, stroke int) {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	scale := math.Min(rx, ry)

	clip := r.Intersect(img.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d := (1 - math.Sqrt(dx*dx+dy*dy)) * scale
			if d >= -0.5 && d < float64(stroke) {
				setPixel(img, x, y, c)
			}
		}
	}
}

// drawRoundedBox strokes r with corners of the given radius
func drawRoundedBox(img *image.NRGBA, r image.Rectangle, radius int, c color.NRGBA, stroke int) {
	radius = minInt(radius, minInt(r.Dx(), r.Dy())/2)
	rad := float64(radius)
	ix0, ix1 := float64(r.Min.X)+rad, float64(r.Max.X)-rad
	iy0, iy1 := float64(r.Min.Y)+rad, float64(r.Max.Y)-rad

	// Geometry follows the full box, only on-canvas pixels are visited
	clip := r.Intersect(img.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			qx := clamp(px, ix0, ix1)
			qy := clamp(py, iy0, iy1)
			d := rad - math.Hypot(px-qx, py-qy)
			if d >= 0 && d < float64(stroke) {
				setPixel(img, x, y, c)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	i := img.PixOffset(x, y)
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
