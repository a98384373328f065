package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig controls the rotating log file
type FileConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Tee also writes every line to stderr
	Tee bool
}

// UseRotatingFile routes the standard logger to a lumberjack-managed file.
// The returned closer releases the file.
func UseRotatingFile(cfg FileConfig) (io.Closer, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("log filename is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	var w io.Writer = lj
	if cfg.Tee {
		w = io.MultiWriter(os.Stderr, lj)
	}
	log.SetOutput(w)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return lj, nil
}
