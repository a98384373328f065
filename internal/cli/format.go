package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/menta2k/card-overlay/pkg/types"
	"github.com/menta2k/card-overlay/pkg/verify"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printSection(w io.Writer, title string) {
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
}

func printLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	_, _ = valueColor.Fprintln(w, value)
}

// printOverlay writes params as a readable block or as JSON
func printOverlay(w io.Writer, name string, params types.OverlayParams, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	}

	printSection(w, fmt.Sprintf("Overlay for %s", name))
	printLabelValue(w, "Pixels", fmt.Sprintf("left=%.2f top=%.2f width=%.2f height=%.2f",
		params.Pixel.Left, params.Pixel.Top, params.Pixel.Width, params.Pixel.Height))
	printLabelValue(w, "Millimeters", fmt.Sprintf("left=%.2f top=%.2f width=%.2f height=%.2f",
		params.MM.Left, params.MM.Top, params.MM.Width, params.MM.Height))
	printLabelValue(w, "Shape", string(params.Shape))
	printLabelValue(w, "Visible", fmt.Sprintf("%t", params.Visible))
	return nil
}

// consoleSink prints verifier records to a terminal
type consoleSink struct {
	w io.Writer
}

func (s consoleSink) Emit(r verify.Record) {
	for i, line := range r.Lines {
		switch {
		case r.Level == verify.LevelWarn:
			_, _ = warningColor.Fprintln(s.w, line)
		case i == 0:
			_, _ = headerColor.Fprintln(s.w, line)
		case strings.Contains(line, "⚠"):
			_, _ = warningColor.Fprintln(s.w, line)
		default:
			fmt.Fprintln(s.w, line)
		}
	}
}

// multiSink fans a record out to several sinks
type multiSink []verify.Sink

func (m multiSink) Emit(r verify.Record) {
	for _, s := range m {
		s.Emit(r)
	}
}
