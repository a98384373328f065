package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "CARD_OVERLAY_"

// Config holds the application configuration
type Config struct {
	Card    CardConfig    `json:"card" envPrefix:"CARD_"`
	Verify  VerifyConfig  `json:"verify" envPrefix:"VERIFY_"`
	Preview PreviewConfig `json:"preview" envPrefix:"PREVIEW_"`
	Log     LogConfig     `json:"log" envPrefix:"LOG_"`
}

// CardConfig holds the physical card size
type CardConfig struct {
	WidthMM  float64 `json:"width_mm" env:"WIDTH_MM"`
	HeightMM float64 `json:"height_mm" env:"HEIGHT_MM"`
}

// VerifyConfig holds configuration for photo source verification
type VerifyConfig struct {
	DecodePayload bool `json:"decode_payload" env:"DECODE_PAYLOAD"`
}

// PreviewConfig holds configuration for debug preview output
type PreviewConfig struct {
	Scale     float64 `json:"scale" env:"SCALE"`
	Stroke    int     `json:"stroke" env:"STROKE"`
	Format    string  `json:"format" env:"FORMAT"`
	Quality   int     `json:"quality" env:"QUALITY"`
	Lossless  bool    `json:"lossless" env:"LOSSLESS"`
	OutputDir string  `json:"output_dir" env:"OUTPUT_DIR"`
	Prefix    string  `json:"prefix" env:"PREFIX"`
	Suffix    string  `json:"suffix" env:"SUFFIX"`
}

// LogConfig holds configuration for log output
type LogConfig struct {
	// File enables a rotating log file when set
	File       string `json:"file" env:"FILE"`
	MaxSizeMB  int    `json:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `json:"max_age_days" env:"MAX_AGE_DAYS"`
	Compress   bool   `json:"compress" env:"COMPRESS"`
	Debug      bool   `json:"debug" env:"DEBUG"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Card: CardConfig{
			WidthMM:  54,
			HeightMM: 86,
		},
		Verify: VerifyConfig{
			DecodePayload: false,
		},
		Preview: PreviewConfig{
			Scale:     4,
			Stroke:    2,
			Format:    "png",
			Quality:   92,
			Lossless:  false,
			OutputDir: "./output",
			Prefix:    "",
			Suffix:    "_preview",
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 2,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// LoadFromFile loads configuration from a JSON file on top of the defaults
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads filename when it exists, then applies environment overrides
func Load(filename string) (*Config, error) {
	config := Default()
	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			config, err = LoadFromFile(filename)
			if err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from CARD_OVERLAY_* environment variables
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Card.WidthMM <= 0 || c.Card.HeightMM <= 0 {
		return fmt.Errorf("card.width_mm and card.height_mm must be positive")
	}

	if c.Preview.Scale <= 0 {
		return fmt.Errorf("preview.scale must be positive")
	}

	if c.Preview.Stroke < 1 {
		return fmt.Errorf("preview.stroke must be at least 1")
	}

	if c.Preview.Quality < 1 || c.Preview.Quality > 100 {
		return fmt.Errorf("preview.quality must be between 1 and 100")
	}

	switch strings.ToLower(c.Preview.Format) {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("preview.format must be one of png, jpg, webp")
	}

	if c.Log.File != "" && c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb cannot be negative")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "card-overlay", "config.json")
}
