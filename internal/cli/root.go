package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cardoverlay "github.com/menta2k/card-overlay"
	"github.com/menta2k/card-overlay/internal/config"
	"github.com/menta2k/card-overlay/internal/log"
	"github.com/menta2k/card-overlay/internal/utils"
	"github.com/menta2k/card-overlay/pkg/design"
	"github.com/menta2k/card-overlay/pkg/processing"
	"github.com/menta2k/card-overlay/pkg/types"
	"github.com/menta2k/card-overlay/pkg/verify"
)

var version = "dev"

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// app carries state shared by every subcommand of one invocation
type app struct {
	configPath string
	logFile    string
	debug      bool

	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCmd builds the card-overlay command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "card-overlay",
		Version: version,
		Short:   "Photo overlay placement and photo source diagnostics for printable cards",
		Long: `card-overlay converts a template's photo placement from the canonical
153x244 pixel space into millimeters for a physical card, and reports on the
photo source a card would be exported with.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", config.GetConfigPath(), "path to JSON config file")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to a rotating file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newComputeCmd(a), newVerifyCmd(a), newPreviewCmd(a))
	return root
}

// Execute runs the root command
func Execute() error {
	a := &app{}
	return a.execute(newRootCmd(a))
}

// execute runs cmd and releases the log file even when the command fails,
// since cobra skips post-run hooks after a RunE error
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if cerr := a.teardown(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close log file: %w", cerr))
	}
	return err
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	if a.debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	log.SetDebug(cfg.Log.Debug)
	if cfg.Log.File != "" {
		closer, err := log.UseRotatingFile(log.FileConfig{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
		if err != nil {
			return err
		}
		a.logCloser = closer
	}
	log.Debugf("config loaded from %s", a.configPath)
	return nil
}

func (a *app) teardown() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	log.SetOutput(os.Stderr)
	log.SetFlags(log.DefaultFlags)
	return err
}

// overlay builds the facade for one command, printing verifier output to w
func (a *app) overlay(w io.Writer) *cardoverlay.CardOverlay {
	var sink verify.Sink = consoleSink{w: w}
	if a.cfg.Log.File != "" {
		sink = multiSink{sink, verify.LogSink{}}
	}

	return cardoverlay.NewWithConfig(
		design.New(),
		sink,
		verify.Config{DecodePayload: a.cfg.Verify.DecodePayload},
		processing.NewPreviewConfig(a.cfg.Preview.Scale, a.cfg.Preview.Stroke),
	)
}

// loadTemplate reads path, or returns a template with all defaults when path is empty
func loadTemplate(path string) (types.Template, error) {
	if path == "" {
		log.Debug("no template given, using design defaults")
		return types.Template{Name: "default"}, nil
	}
	if !utils.FileExists(path) {
		return types.Template{}, fmt.Errorf("template file not found: %s", path)
	}
	tpl, err := design.LoadTemplate(path)
	if err != nil {
		return types.Template{}, err
	}
	if tpl.Name == "" {
		tpl.Name = path
	}
	return tpl, nil
}

// cardSize returns the flag values, falling back to config when a flag was not set
func (a *app) cardSize(cmd *cobra.Command, width, height float64) (float64, float64) {
	if !cmd.Flags().Changed("width") {
		width = a.cfg.Card.WidthMM
	}
	if !cmd.Flags().Changed("height") {
		height = a.cfg.Card.HeightMM
	}
	return width, height
}
