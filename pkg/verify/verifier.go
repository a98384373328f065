package verify

import (
	"fmt"

	"github.com/menta2k/card-overlay/pkg/payload"
)

// Tag prefixes every diagnostic header line
const Tag = "[PhotoSource]"

// Format and provenance labels
const (
	FormatPNG       = "PNG (supports transparency)"
	FormatOther     = "JPEG/other"
	SourceProcessed = "PROCESSED (background-removed and cropped)"
	SourceRaw       = "⚠ RAW URL — possible bug (expected processed data URL)"
)

// Verifier emits diagnostics about the photo a card is exported with
type Verifier struct {
	sink      Sink
	inspector *payload.Inspector
	config    Config
}

// Config holds configuration for source verification
type Config struct {
	// DecodePayload adds a line describing the decoded image header
	DecodePayload bool
}

// New creates a Verifier writing to the standard logger
func New() *Verifier {
	return &Verifier{
		sink:      LogSink{},
		inspector: payload.New(),
	}
}

// NewWithSink creates a Verifier writing to sink
func NewWithSink(sink Sink) *Verifier {
	return NewWithConfig(sink, Config{})
}

// NewWithConfig creates a Verifier with custom sink and configuration
func NewWithConfig(sink Sink, config Config) *Verifier {
	if sink == nil {
		sink = LogSink{}
	}
	return &Verifier{
		sink:      sink,
		inspector: payload.New(),
		config:    config,
	}
}

// Verify describes the photo payload for subject. An empty payload means no
// photo. It never fails and never panics on malformed input.
func (v *Verifier) Verify(subject, photo, template string) {
	if photo == "" {
		v.sink.Emit(Record{
			Level:    LevelWarn,
			Subject:  subject,
			Template: template,
			Lines:    []string{fmt.Sprintf("%s ⚠ %s: NO PHOTO - export will have a blank photo area", Tag, subject)},
		})
		return
	}

	report := payload.Classify(photo)

	format := FormatOther
	if report.IsPNG {
		format = FormatPNG
	}
	source := SourceRaw
	if report.IsDataURL {
		source = SourceProcessed
	}

	lines := []string{
		fmt.Sprintf("%s %s", Tag, subject),
		fmt.Sprintf("  ├─ Template: %s", template),
		fmt.Sprintf("  ├─ Data URL: %t", report.IsDataURL),
		fmt.Sprintf("  ├─ Format: %s", format),
		fmt.Sprintf("  ├─ Size: ~%d KB", report.SizeKB),
	}
	if v.config.DecodePayload && report.IsDataURL {
		lines = append(lines, v.decodedLine(photo))
	}
	lines = append(lines, fmt.Sprintf("  └─ Source: %s", source))

	v.sink.Emit(Record{
		Level:    LevelInfo,
		Subject:  subject,
		Template: template,
		Lines:    lines,
		Report:   &report,
	})
}

func (v *Verifier) decodedLine(photo string) string {
	info, err := v.inspector.Inspect(photo)
	if err != nil {
		return fmt.Sprintf("  ├─ Decoded: unreadable (%v)", err)
	}
	return fmt.Sprintf("  ├─ Decoded: %s %dx%d alpha=%t", info.Format, info.Width, info.Height, info.HasAlpha)
}

// VerifySource verifies photo using a Verifier that writes to the standard logger
func VerifySource(subject, photo, template string) {
	New().Verify(subject, photo, template)
}
