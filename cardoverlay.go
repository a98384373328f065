// Package cardoverlay computes where a photo is placed on a printable card
// and logs diagnostics about the photo source used at export time.
//
// Templates are authored in a fixed pixel space (153x244). The overlay
// calculator converts a template's resolved photo box into both that pixel
// space and millimeters for a physical card size, so that on-screen preview
// and printed export share a single geometry.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		cardoverlay "github.com/menta2k/card-overlay"
//		"github.com/menta2k/card-overlay/pkg/types"
//	)
//
//	func main() {
//		co := cardoverlay.New()
//
//		tpl := types.Template{
//			Name: "Classic",
//			Front: types.FrontDesign{
//				PhotoX:     types.Float(10),
//				PhotoY:     types.Float(20),
//				PhotoShape: "circle",
//			},
//		}
//
//		params, err := co.ComputeOverlay(tpl, 54, 86)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("photo at %.2fmm, %.2fmm\n", params.MM.Left, params.MM.Top)
//
//		co.VerifySource("Alice", "data:image/png;base64,iVBORw0KGgo...", tpl.Name)
//	}
//
// The package consists of these components:
//
//  1. Overlay (pkg/overlay): pixel to millimeter placement
//  2. Verify (pkg/verify): photo source diagnostics through a pluggable sink
//  3. Design (pkg/design): default resolver and the reference pixel space
//  4. Processing (pkg/processing): debug preview rendering
package cardoverlay

import (
	"fmt"
	"image"

	"github.com/menta2k/card-overlay/pkg/overlay"
	"github.com/menta2k/card-overlay/pkg/processing"
	"github.com/menta2k/card-overlay/pkg/resolver"
	"github.com/menta2k/card-overlay/pkg/types"
	"github.com/menta2k/card-overlay/pkg/verify"
)

// Version of the card overlay library
const Version = "1.0.0"

// CardOverlay provides a high-level interface over the calculator, verifier
// and preview renderer
type CardOverlay struct {
	calculator *overlay.Calculator
	verifier   *verify.Verifier
	processor  *processing.Processor
}

// New creates a new CardOverlay with default configuration
func New() *CardOverlay {
	return &CardOverlay{
		calculator: overlay.New(),
		verifier:   verify.New(),
		processor:  processing.NewProcessor(),
	}
}

// NewWithConfig creates a new CardOverlay with custom collaborators. A nil
// resolver uses the default design resolver and a nil sink the standard logger.
func NewWithConfig(r resolver.Resolver, sink verify.Sink, verifyConfig verify.Config, previewConfig processing.Config) *CardOverlay {
	return &CardOverlay{
		calculator: overlay.NewWithResolver(r),
		verifier:   verify.NewWithConfig(sink, verifyConfig),
		processor:  processing.NewProcessorWithConfig(previewConfig),
	}
}

// ComputeOverlay returns the photo placement for a card of the given size in millimeters
func (co *CardOverlay) ComputeOverlay(tpl types.Template, targetWidthMM, targetHeightMM float64) (types.OverlayParams, error) {
	return co.calculator.Compute(tpl, targetWidthMM, targetHeightMM)
}

// VerifySource logs diagnostics about the photo payload for subject
func (co *CardOverlay) VerifySource(subject, photo, templateName string) {
	co.verifier.Verify(subject, photo, templateName)
}

// PrepareExport verifies the photo source and computes its placement, the
// two steps every physical export runs before drawing
func (co *CardOverlay) PrepareExport(subject string, tpl types.Template, photo string, targetWidthMM, targetHeightMM float64) (types.OverlayParams, error) {
	co.verifier.Verify(subject, photo, tpl.Name)

	params, err := co.calculator.Compute(tpl, targetWidthMM, targetHeightMM)
	if err != nil {
		return types.OverlayParams{}, fmt.Errorf("overlay computation failed: %w", err)
	}
	return params, nil
}

// RenderPreview computes the overlay and draws it on a diagnostic card image
func (co *CardOverlay) RenderPreview(tpl types.Template, targetWidthMM, targetHeightMM float64) (types.OverlayParams, image.Image, error) {
	params, err := co.calculator.Compute(tpl, targetWidthMM, targetHeightMM)
	if err != nil {
		return types.OverlayParams{}, nil, fmt.Errorf("overlay computation failed: %w", err)
	}
	return params, co.processor.CreateDebugOverlay(params), nil
}

// SavePreview renders the preview for tpl and writes it to path
func (co *CardOverlay) SavePreview(tpl types.Template, targetWidthMM, targetHeightMM float64, path, format string, quality int, lossless bool) (types.OverlayParams, error) {
	params, img, err := co.RenderPreview(tpl, targetWidthMM, targetHeightMM)
	if err != nil {
		return types.OverlayParams{}, err
	}
	if err := co.processor.SaveImage(img, path, format, quality, lossless); err != nil {
		return types.OverlayParams{}, fmt.Errorf("failed to save preview: %w", err)
	}
	return params, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
