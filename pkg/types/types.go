package types

import (
	"image"
	"math"
)

// Shape is the mask applied to the photo on the card
type Shape string

// Supported photo shapes
const (
	ShapeCircle  Shape = "circle"
	ShapeRounded Shape = "rounded"
	ShapeSquare  Shape = "square"
)

// Valid reports whether s is one of the known shapes
func (s Shape) Valid() bool {
	switch s {
	case ShapeCircle, ShapeRounded, ShapeSquare:
		return true
	}
	return false
}

// Template is a user-selectable card design. Only Front is read by resolution.
type Template struct {
	Name  string      `json:"name"`
	Front FrontDesign `json:"front"`
}

// FrontDesign describes the front face of a card. Nil fields are filled
// in with defaults by the resolver.
type FrontDesign struct {
	PhotoX      *float64 `json:"photoX,omitempty"`
	PhotoY      *float64 `json:"photoY,omitempty"`
	PhotoWidth  *float64 `json:"photoWidth,omitempty"`
	PhotoHeight *float64 `json:"photoHeight,omitempty"`
	PhotoShape  string   `json:"photoShape,omitempty"`
	ShowPhoto   *bool    `json:"showPhoto,omitempty"`
}

// Point is a position in template pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in template pixels
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Design is the fully-defaulted front layout shared by every render and export path
type Design struct {
	PhotoPosition Point `json:"photoPosition"`
	PhotoSize     Size  `json:"photoSize"`
	PhotoShape    Shape `json:"photoShape"`
	ShowPhoto     *bool `json:"showPhoto,omitempty"`
}

// PixelBox is a photo rectangle in template pixels
type PixelBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the box as an integer rectangle, rounding each edge
func (b PixelBox) Rect() image.Rectangle {
	x0 := int(math.Round(b.Left))
	y0 := int(math.Round(b.Top))
	x1 := int(math.Round(b.Left + b.Width))
	y1 := int(math.Round(b.Top + b.Height))
	return image.Rect(x0, y0, x1, y1)
}

// MMBox is a photo rectangle in millimeters
type MMBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Millimeter to PDF point conversion
const (
	Inch2MM    = 25.4
	Inch2Point = 72.0
	MM2Point   = Inch2Point / Inch2MM
)

// Points returns the box converted to PDF points (1/72 inch)
func (b MMBox) Points() MMBox {
	return MMBox{
		Left:   b.Left * MM2Point,
		Top:    b.Top * MM2Point,
		Width:  b.Width * MM2Point,
		Height: b.Height * MM2Point,
	}
}

// OverlayParams describes where a photo must be drawn on a card
type OverlayParams struct {
	Pixel   PixelBox `json:"pixel"`
	MM      MMBox    `json:"mm"`
	Shape   Shape    `json:"shape"`
	Visible bool     `json:"visible"`
}

// Scale returns a copy with the millimeter values multiplied by factor.
// Pixel values are left untouched.
func (p OverlayParams) Scale(factor float64) OverlayParams {
	p.MM = MMBox{
		Left:   p.MM.Left * factor,
		Top:    p.MM.Top * factor,
		Width:  p.MM.Width * factor,
		Height: p.MM.Height * factor,
	}
	return p
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to f
func Float(f float64) *float64 {
	return &f
}
