package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults with text", func(c *Config) { c.Text = "ERIC KVALE" }, true},
		{"empty text", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Text = "X"; c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Text = "X"; c.Height = -1 }, false},
		{"zero frames", func(c *Config) { c.Text = "X"; c.TotalFrames = 0 }, false},
		{"zero delay", func(c *Config) { c.Text = "X"; c.FrameDelay = 0 }, false},
		{"bad scale", func(c *Config) { c.Text = "X"; c.RenderScale = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Expected validation error")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
			}
		})
	}
}

func TestDefaultCaption(t *testing.T) {
	if got := Default().Caption; got != "Hermeneutic Learning Cartographer | Spaceship Earth" {
		t.Errorf("Unexpected default caption %q", got)
	}
	if got := DefaultTypewriter().Caption; got != "" {
		t.Errorf("Typewriter variant should not carry a caption, got %q", got)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#e94560")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	want := color.RGBA{R: 0xe9, G: 0x45, B: 0x60, A: 0xff}
	if c != want {
		t.Errorf("Expected %v, got %v", want, c)
	}

	for _, bad := range []string{"", "e94560", "#e945", "#zzzzzz", "#e9456011"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestRenderDimensions(t *testing.T) {
	cfg := Default()
	if cfg.RenderWidth() != 1800 || cfg.RenderHeight() != 900 {
		t.Errorf("Expected 1800x900 render canvas, got %dx%d", cfg.RenderWidth(), cfg.RenderHeight())
	}

	tw := DefaultTypewriter()
	if tw.RenderWidth() != tw.Width || tw.RenderHeight() != tw.Height {
		t.Error("Typewriter should render at native resolution")
	}
}

func TestApplyPreset(t *testing.T) {
	preset := `
text: "ERIC KVALE"
caption: "Hermeneutic Learning Cartographer"
total_frames: 120
foreground: "#00ff00"
noise_end: 0.25
`
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(preset), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := ApplyPreset(cfg, path); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}

	if cfg.Text != "ERIC KVALE" {
		t.Errorf("Text not applied: %q", cfg.Text)
	}
	if cfg.TotalFrames != 120 {
		t.Errorf("TotalFrames not applied: %d", cfg.TotalFrames)
	}
	if cfg.Foreground != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Errorf("Foreground not applied: %v", cfg.Foreground)
	}
	if cfg.NoiseEndFrac != 0.25 {
		t.Errorf("NoiseEndFrac not applied: %f", cfg.NoiseEndFrac)
	}
	// Untouched knobs keep their defaults.
	if cfg.Width != 1200 || cfg.FrameDelay != 80 {
		t.Error("Preset must not disturb unset fields")
	}

	if err := ApplyPreset(cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing preset file")
	}
}
