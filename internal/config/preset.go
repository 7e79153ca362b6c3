package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is the YAML form of the tunable knobs. Unset fields keep the
// compiled-in defaults, so a preset only has to name what it changes.
type Preset struct {
	Text    *string `yaml:"text"`
	Caption *string `yaml:"caption"`

	Width       *int     `yaml:"width"`
	Height      *int     `yaml:"height"`
	RenderScale *float64 `yaml:"render_scale"`

	Background *string `yaml:"background"`
	Foreground *string `yaml:"foreground"`

	TotalFrames *int `yaml:"total_frames"`
	FrameDelay  *int `yaml:"frame_delay_ms"`

	NoiseEndFrac     *float64 `yaml:"noise_end"`
	RevealEndFrac    *float64 `yaml:"reveal_end"`
	CaptionStartFrac *float64 `yaml:"caption_start"`
	CaptionFullFrac  *float64 `yaml:"caption_full"`

	NoiseDensity *int `yaml:"noise_density"`

	FontPath        *string  `yaml:"font"`
	NoiseFontPath   *string  `yaml:"noise_font"`
	CaptionFontPath *string  `yaml:"caption_font"`
	FontSize        *float64 `yaml:"font_size"`

	QRContent *string `yaml:"qr"`
	Output    *string `yaml:"output"`
}

// ApplyPreset reads a YAML preset file and overlays it onto cfg.
func ApplyPreset(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("чтение пресета: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("разбор пресета %s: %w", path, err)
	}

	setString(&cfg.Text, p.Text)
	setString(&cfg.Caption, p.Caption)
	setInt(&cfg.Width, p.Width)
	setInt(&cfg.Height, p.Height)
	setFloat(&cfg.RenderScale, p.RenderScale)
	setInt(&cfg.TotalFrames, p.TotalFrames)
	setInt(&cfg.FrameDelay, p.FrameDelay)
	setFloat(&cfg.NoiseEndFrac, p.NoiseEndFrac)
	setFloat(&cfg.RevealEndFrac, p.RevealEndFrac)
	setFloat(&cfg.CaptionStartFrac, p.CaptionStartFrac)
	setFloat(&cfg.CaptionFullFrac, p.CaptionFullFrac)
	setInt(&cfg.NoiseDensity, p.NoiseDensity)
	setString(&cfg.FontPath, p.FontPath)
	setString(&cfg.NoiseFontPath, p.NoiseFontPath)
	setString(&cfg.CaptionFontPath, p.CaptionFontPath)
	setFloat(&cfg.FontSize, p.FontSize)
	setString(&cfg.QRContent, p.QRContent)
	setString(&cfg.OutputPath, p.Output)

	if p.Background != nil {
		c, err := ParseHexColor(*p.Background)
		if err != nil {
			return err
		}
		cfg.Background = c
	}
	if p.Foreground != nil {
		c, err := ParseHexColor(*p.Foreground)
		if err != nil {
			return err
		}
		cfg.Foreground = c
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
