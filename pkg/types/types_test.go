package types

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeValid(t *testing.T) {
	for _, s := range []Shape{ShapeCircle, ShapeRounded, ShapeSquare} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Shape("Circle").Valid())
	assert.False(t, Shape("").Valid())
}

func TestPixelBoxRect(t *testing.T) {
	b := PixelBox{Left: 10.4, Top: 19.6, Width: 50, Height: 80.2}
	assert.Equal(t, image.Rect(10, 20, 60, 100), b.Rect())
}

func TestMMBoxPoints(t *testing.T) {
	b := MMBox{Left: 25.4, Top: 0, Width: 50.8, Height: 12.7}
	p := b.Points()
	assert.InDelta(t, 72.0, p.Left, 1e-9)
	assert.InDelta(t, 0.0, p.Top, 1e-9)
	assert.InDelta(t, 144.0, p.Width, 1e-9)
	assert.InDelta(t, 36.0, p.Height, 1e-9)
}

func TestOverlayParamsScale(t *testing.T) {
	p := OverlayParams{
		Pixel:   PixelBox{Left: 1, Top: 2, Width: 3, Height: 4},
		MM:      MMBox{Left: 1.5, Top: 2.5, Width: 3.5, Height: 4.5},
		Shape:   ShapeSquare,
		Visible: true,
	}

	s := p.Scale(2)
	assert.Equal(t, p.Pixel, s.Pixel)
	assert.Equal(t, MMBox{Left: 3, Top: 5, Width: 7, Height: 9}, s.MM)
	assert.Equal(t, 1.5, p.MM.Left, "original is not modified")
}
