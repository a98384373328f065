package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 54.0, cfg.Card.WidthMM)
	assert.Equal(t, 86.0, cfg.Card.HeightMM)
	assert.Equal(t, "png", cfg.Preview.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Card.WidthMM = 0 }},
		{"negative height", func(c *Config) { c.Card.HeightMM = -1 }},
		{"zero scale", func(c *Config) { c.Preview.Scale = 0 }},
		{"zero stroke", func(c *Config) { c.Preview.Stroke = 0 }},
		{"quality too high", func(c *Config) { c.Preview.Quality = 101 }},
		{"unknown format", func(c *Config) { c.Preview.Format = "gif" }},
		{"negative log size", func(c *Config) { c.Log.File = "x.log"; c.Log.MaxSizeMB = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Card.WidthMM = 85.6
	cfg.Verify.DecodePayload = true
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"card":{"width_mm":100}}`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Card.WidthMM)
	assert.Equal(t, 86.0, cfg.Card.HeightMM, "unset fields keep defaults")
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CARD_OVERLAY_CARD_WIDTH_MM", "85.6")
	t.Setenv("CARD_OVERLAY_VERIFY_DECODE_PAYLOAD", "true")
	t.Setenv("CARD_OVERLAY_PREVIEW_FORMAT", "webp")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, 85.6, cfg.Card.WidthMM)
	assert.Equal(t, 86.0, cfg.Card.HeightMM)
	assert.True(t, cfg.Verify.DecodePayload)
	assert.Equal(t, "webp", cfg.Preview.Format)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("CARD_OVERLAY_CARD_WIDTH_MM", "wide")

	_, err := Load("")
	assert.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.json", filepath.Base(GetConfigPath()))
}
