package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/menta2k/card-overlay/pkg/types"
)

// Canonical card in template pixels. Every template coordinate is authored
// against this space.
const (
	ReferenceWidth  = 153.0
	ReferenceHeight = 244.0
)

// Defaults applied to descriptor fields a template leaves unset
const (
	DefaultPhotoX      = 41.5
	DefaultPhotoY      = 30.0
	DefaultPhotoWidth  = 70.0
	DefaultPhotoHeight = 70.0
	DefaultPhotoShape  = types.ShapeRounded
)

// ErrInvalidDesign is returned when a descriptor holds a non-finite coordinate
var ErrInvalidDesign = errors.New("invalid front design")

// Resolver fills a FrontDesign with defaults
type Resolver struct {
	defaults types.Design
}

// New creates a resolver using the package defaults
func New() *Resolver {
	return &Resolver{
		defaults: types.Design{
			PhotoPosition: types.Point{X: DefaultPhotoX, Y: DefaultPhotoY},
			PhotoSize:     types.Size{Width: DefaultPhotoWidth, Height: DefaultPhotoHeight},
			PhotoShape:    DefaultPhotoShape,
		},
	}
}

// NewWithDefaults creates a resolver with custom default values
func NewWithDefaults(defaults types.Design) *Resolver {
	if !defaults.PhotoShape.Valid() {
		defaults.PhotoShape = DefaultPhotoShape
	}
	return &Resolver{defaults: defaults}
}

// Resolve returns the concrete layout for front
func (r *Resolver) Resolve(front types.FrontDesign) (types.Design, error) {
	d := r.defaults
	d.PhotoPosition.X = pick(front.PhotoX, d.PhotoPosition.X)
	d.PhotoPosition.Y = pick(front.PhotoY, d.PhotoPosition.Y)
	d.PhotoSize.Width = pick(front.PhotoWidth, d.PhotoSize.Width)
	d.PhotoSize.Height = pick(front.PhotoHeight, d.PhotoSize.Height)

	for name, v := range map[string]float64{
		"photoX":      d.PhotoPosition.X,
		"photoY":      d.PhotoPosition.Y,
		"photoWidth":  d.PhotoSize.Width,
		"photoHeight": d.PhotoSize.Height,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return types.Design{}, fmt.Errorf("%w: %s is %v", ErrInvalidDesign, name, v)
		}
	}

	if front.PhotoShape != "" {
		d.PhotoShape = normalizeShape(front.PhotoShape, d.PhotoShape)
	}
	if front.ShowPhoto != nil {
		d.ShowPhoto = types.Bool(*front.ShowPhoto)
	}
	return d, nil
}

// LoadTemplate reads a JSON template from disk
func LoadTemplate(filename string) (types.Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return types.Template{}, fmt.Errorf("failed to read template file: %w", err)
	}

	var tpl types.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return types.Template{}, fmt.Errorf("failed to parse template file: %w", err)
	}
	return tpl, nil
}

func pick(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// normalizeShape lowercases s and falls back when it is not a known shape
func normalizeShape(s string, fallback types.Shape) types.Shape {
	shape := types.Shape(strings.ToLower(strings.TrimSpace(s)))
	if shape.Valid() {
		return shape
	}
	return fallback
}
