package overlay

import (
	"fmt"

	"github.com/menta2k/card-overlay/pkg/design"
	"github.com/menta2k/card-overlay/pkg/resolver"
	"github.com/menta2k/card-overlay/pkg/types"
)

// Calculator converts a template's photo placement into card coordinates.
// It is the single conversion point shared by preview and export paths.
type Calculator struct {
	resolver resolver.Resolver
	config   Config
}

// Config holds the reference pixel space templates are authored in
type Config struct {
	ReferenceWidth  float64
	ReferenceHeight float64
}

// DefaultConfig returns the canonical template coordinate space
func DefaultConfig() Config {
	return Config{
		ReferenceWidth:  design.ReferenceWidth,
		ReferenceHeight: design.ReferenceHeight,
	}
}

// New creates a Calculator backed by the default design resolver
func New() *Calculator {
	return &Calculator{
		resolver: design.New(),
		config:   DefaultConfig(),
	}
}

// NewWithResolver creates a Calculator that resolves templates through r.
// A nil r falls back to the default design resolver.
func NewWithResolver(r resolver.Resolver) *Calculator {
	return NewWithConfig(r, DefaultConfig())
}

// NewWithConfig creates a Calculator with a custom reference space
func NewWithConfig(r resolver.Resolver, config Config) *Calculator {
	return &Calculator{
		resolver: orDefault(r),
		config:   config,
	}
}

// SetResolver allows setting a custom design resolver
func (c *Calculator) SetResolver(r resolver.Resolver) {
	c.resolver = orDefault(r)
}

func orDefault(r resolver.Resolver) resolver.Resolver {
	if r == nil {
		return design.New()
	}
	return r
}

// Compute returns the pixel and millimeter placement of the template's photo
// on a card of targetWidthMM x targetHeightMM. Target sizes are not checked;
// zero or negative values yield zero or negative millimeter output.
func (c *Calculator) Compute(tpl types.Template, targetWidthMM, targetHeightMM float64) (types.OverlayParams, error) {
	d, err := c.resolver.Resolve(tpl.Front)
	if err != nil {
		return types.OverlayParams{}, fmt.Errorf("failed to resolve front design: %w", err)
	}

	px := types.PixelBox{
		Left:   d.PhotoPosition.X,
		Top:    d.PhotoPosition.Y,
		Width:  d.PhotoSize.Width,
		Height: d.PhotoSize.Height,
	}

	return types.OverlayParams{
		Pixel: px,
		MM: types.MMBox{
			Left:   px.Left / c.config.ReferenceWidth * targetWidthMM,
			Top:    px.Top / c.config.ReferenceHeight * targetHeightMM,
			Width:  px.Width / c.config.ReferenceWidth * targetWidthMM,
			Height: px.Height / c.config.ReferenceHeight * targetHeightMM,
		},
		Shape:   d.PhotoShape,
		Visible: isVisible(d),
	}, nil
}

// ComputeOverlay computes placement using r and the canonical reference space
func ComputeOverlay(r resolver.Resolver, tpl types.Template, targetWidthMM, targetHeightMM float64) (types.OverlayParams, error) {
	return NewWithResolver(r).Compute(tpl, targetWidthMM, targetHeightMM)
}

func isVisible(d types.Design) bool {
	if d.ShowPhoto != nil && !*d.ShowPhoto {
		return false
	}
	return d.PhotoSize.Width > 0 && d.PhotoSize.Height > 0
}
