package processing

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/card-overlay/pkg/types"
)

func sampleParams(shape types.Shape, visible bool) types.OverlayParams {
	return types.OverlayParams{
		Pixel:   types.PixelBox{Left: 10, Top: 20, Width: 50, Height: 80},
		Shape:   shape,
		Visible: visible,
	}
}

func TestNewProcessorWithConfig(t *testing.T) {
	p := NewProcessorWithConfig(Config{})
	assert.Equal(t, 1.0, p.config.Scale)
	assert.Equal(t, 1, p.config.Stroke)

	w, h := p.CanvasSize()
	assert.Equal(t, 153, w)
	assert.Equal(t, 244, h)
}

func TestPhotoRect(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, image.Rect(40, 80, 240, 400), p.PhotoRect(sampleParams(types.ShapeSquare, true)))
}

func TestCreateDebugOverlay(t *testing.T) {
	p := NewProcessor()
	bg := p.config.Background

	for _, shape := range []types.Shape{types.ShapeCircle, types.ShapeRounded, types.ShapeSquare} {
		t.Run(string(shape), func(t *testing.T) {
			img := p.CreateDebugOverlay(sampleParams(shape, true))

			w, h := p.CanvasSize()
			assert.Equal(t, w, img.Bounds().Dx())
			assert.Equal(t, h, img.Bounds().Dy())

			// top edge midpoint of the photo box is outlined
			assert.NotEqual(t, bg, img.NRGBAAt(140, 80))
			// center crosshair
			assert.Equal(t, p.config.Center, img.NRGBAAt(140, 240))
			// inside the photo box, away from edges and crosshair
			assert.Equal(t, bg, img.NRGBAAt(60, 240))
			// card frame
			assert.Equal(t, p.config.Frame, img.NRGBAAt(0, 0))
		})
	}
}

func TestCreateDebugOverlayHidden(t *testing.T) {
	p := NewProcessor()
	img := p.CreateDebugOverlay(sampleParams(types.ShapeSquare, false))

	assert.Equal(t, p.config.Background, img.NRGBAAt(140, 80))
	assert.Equal(t, p.config.Background, img.NRGBAAt(140, 240))
}

func TestCreateDebugOverlayOutOfBounds(t *testing.T) {
	p := NewProcessor()
	params := types.OverlayParams{
		Pixel:   types.PixelBox{Left: -20, Top: 200, Width: 400, Height: 400},
		Shape:   types.ShapeCircle,
		Visible: true,
	}
	assert.NotPanics(t, func() { p.CreateDebugOverlay(params) })
}

func TestCreateDebugOverlayHugeBox(t *testing.T) {
	p := NewProcessorWithConfig(NewPreviewConfig(1, 1))
	bg := p.config.Background

	// 250000x250000 px box; only the canvas-sized part may be visited
	for _, shape := range []types.Shape{types.ShapeCircle, types.ShapeRounded, types.ShapeSquare} {
		t.Run(string(shape), func(t *testing.T) {
			params := types.OverlayParams{
				Pixel:   types.PixelBox{Left: -1000, Top: -1000, Width: 250000, Height: 250000},
				Shape:   shape,
				Visible: true,
			}

			start := time.Now()
			img := p.CreateDebugOverlay(params)
			assert.Less(t, time.Since(start), 2*time.Second)

			assert.Equal(t, image.Rect(0, 0, 153, 244), img.Bounds())
			assert.Equal(t, bg, img.NRGBAAt(76, 122))
		})
	}
}

func TestSaveImage(t *testing.T) {
	p := NewProcessorWithConfig(Config{Scale: 1, Background: color.NRGBA{255, 255, 255, 255}})
	img := p.CreateDebugOverlay(sampleParams(types.ShapeRounded, true))
	dir := t.TempDir()

	for _, format := range []string{"png", "jpg", "webp"} {
		path := filepath.Join(dir, "preview."+format)
		require.NoError(t, p.SaveImage(img, path, format, 90, format == "webp"))

		var saved image.Image
		var err error
		if format == "webp" {
			saved, err = webp.Load(path)
		} else {
			saved, err = imaging.Open(path)
		}
		require.NoError(t, err)
		assert.Equal(t, img.Bounds().Size(), saved.Bounds().Size())
	}

	// failed webp encode leaves nothing behind
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	emptyPath := filepath.Join(dir, "empty.webp")
	assert.Error(t, p.SaveImage(empty, emptyPath, "webp", 90, false))
	_, statErr := os.Stat(emptyPath)
	assert.True(t, os.IsNotExist(statErr))

	err := p.SaveImage(img, filepath.Join(dir, "preview.bmp"), "bmp", 90, false)
	assert.Error(t, err)
	_, statErr = os.Stat(filepath.Join(dir, "preview.bmp"))
	assert.True(t, os.IsNotExist(statErr))
}

func BenchmarkCreateDebugOverlay(b *testing.B) {
	p := NewProcessor()
	params := sampleParams(types.ShapeCircle, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.CreateDebugOverlay(params)
	}
}
