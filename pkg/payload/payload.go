package payload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp"
)

// Prefixes used to classify a photo payload
const (
	DataURLPrefix    = "data:image"
	PNGDataURLPrefix = "data:image/png"
)

// ErrNotDataURL is returned when a payload is not an embedded image
var ErrNotDataURL = errors.New("payload is not an image data URL")

// Report is the prefix-based classification of a payload string
type Report struct {
	IsDataURL bool `json:"isDataURL"`
	IsPNG     bool `json:"isPNG"`
	// SizeKB is the encoded string length / 1024, rounded. It is a proxy:
	// base64 data decodes to roughly 3/4 of this.
	SizeKB int `json:"sizeKB"`
	Length int `json:"length"`
}

// Classify inspects only the payload prefix and length. It never fails.
func Classify(payload string) Report {
	return Report{
		IsDataURL: strings.HasPrefix(payload, DataURLPrefix),
		IsPNG:     strings.HasPrefix(payload, PNGDataURLPrefix),
		SizeKB:    int(math.Round(float64(len(payload)) / 1024)),
		Length:    len(payload),
	}
}

// DataURL is a parsed "data:" URL
type DataURL struct {
	MediaType string
	Base64    bool
	Data      string
}

// ParseDataURL splits a data URL into its media type and data parts
func ParseDataURL(payload string) (DataURL, error) {
	if !strings.HasPrefix(payload, DataURLPrefix) {
		return DataURL{}, ErrNotDataURL
	}

	header, data, ok := strings.Cut(strings.TrimPrefix(payload, "data:"), ",")
	if !ok {
		return DataURL{}, fmt.Errorf("missing data separator in data URL")
	}

	params := strings.Split(header, ";")
	u := DataURL{MediaType: strings.ToLower(params[0]), Data: data}
	for _, p := range params[1:] {
		if strings.EqualFold(p, "base64") {
			u.Base64 = true
		}
	}
	return u, nil
}

// Bytes returns the decoded data
func (u DataURL) Bytes() ([]byte, error) {
	if !u.Base64 {
		return []byte(u.Data), nil
	}
	raw, err := base64.StdEncoding.DecodeString(u.Data)
	if err != nil {
		// Some encoders drop the padding
		if raw, err2 := base64.RawStdEncoding.DecodeString(u.Data); err2 == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	return raw, nil
}

// Inspector decodes image headers embedded in payloads
type Inspector struct {
	config Config
}

// Config holds configuration for payload inspection
type Config struct {
	SupportedFormats []string
}

// ImageInfo contains decoded image header metadata
type ImageInfo struct {
	Format      string
	Width       int
	Height      int
	AspectRatio float64
	HasAlpha    bool
	Bytes       int
}

// New creates an Inspector accepting png, jpeg and webp
func New() *Inspector {
	return &Inspector{
		config: Config{
			SupportedFormats: []string{"png", "jpeg", "webp"},
		},
	}
}

// NewWithConfig creates an Inspector with custom configuration
func NewWithConfig(config Config) *Inspector {
	return &Inspector{config: config}
}

// Inspect decodes the image header of a data URL payload. Pixel data is
// never decoded.
func (i *Inspector) Inspect(payload string) (ImageInfo, error) {
	u, err := ParseDataURL(payload)
	if err != nil {
		return ImageInfo{}, err
	}

	raw, err := u.Bytes()
	if err != nil {
		return ImageInfo{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to decode image header: %w", err)
	}

	if !i.isFormatSupported(format) {
		return ImageInfo{}, fmt.Errorf("unsupported image format: %s", format)
	}

	info := ImageInfo{
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		HasAlpha: modelHasAlpha(cfg.ColorModel),
		Bytes:    len(raw),
	}
	if cfg.Height > 0 {
		info.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
	}

	if format == "webp" {
		if _, _, hasAlpha, err := webp.GetInfo(raw); err == nil {
			info.HasAlpha = hasAlpha
		}
	}

	return info, nil
}

func (i *Inspector) isFormatSupported(format string) bool {
	for _, supported := range i.config.SupportedFormats {
		if strings.EqualFold(format, supported) {
			return true
		}
	}
	return false
}

func modelHasAlpha(m color.Model) bool {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	switch m {
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel, color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}
