package config

import (
	"errors"
	"fmt"
	"image/color"
	"runtime"
	"strconv"
)

// ErrInvalidConfig marks configurations rejected before any frame is
// composited. Runs failing validation never write an output file.
var ErrInvalidConfig = errors.New("некорректная конфигурация")

// Loop is the animation loop directive handed to the encoder.
type Loop int

const (
	LoopOnce    Loop = iota // play a single time and stop
	LoopForever             // restart indefinitely
)

type Config struct {
	Text    string
	Caption string

	Width       int     // output canvas width, px
	Height      int     // output canvas height, px
	RenderScale float64 // supersampling factor for crisp glyphs

	Background color.RGBA
	Foreground color.RGBA

	TotalFrames int
	FrameDelay  int // per-frame display time, ms
	Loop        Loop

	// Phase boundaries as fractions of TotalFrames. Tuned defaults, not
	// normative thresholds.
	NoiseEndFrac     float64
	RevealEndFrac    float64
	CaptionStartFrac float64
	CaptionFullFrac  float64

	NoiseDensity  int // percent of coarse-grid cells carrying a snow symbol at full progress
	NoiseCellW    int // coarse snow grid pitch, px (render space)
	NoiseCellH    int
	GlyphGrid     int // fine sub-grid pitch inside a forming letter, px
	LetterSpacing int // extra px between letters
	CaptionMargin int // px from the bottom edge to the caption box

	FontPath        string
	NoiseFontPath   string
	CaptionFontPath string
	FontSize        float64
	NoiseFontSize   float64
	CaptionFontSize float64

	// Typewriter pacing.
	LeftMargin  int // x position of the first typed character
	CursorWidth int
	CursorGap   int // px between the typed prefix and the cursor block

	OutputPath     string
	Workers        int
	QRContent      string // optional URL stamped as a QR badge on hold frames
	QRSize         int
	ShowStats      bool
	TimelineOutput string // optional YAML dump of the computed phase timeline
}

// Default returns the letter-build configuration: a 1200x600 canvas
// rendered at 1.5x, 200 frames at 80ms, playing once.
func Default() *Config {
	return &Config{
		Caption:          "Hermeneutic Learning Cartographer | Spaceship Earth",
		Width:            1200,
		Height:           600,
		RenderScale:      1.5,
		Background:       color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff},
		Foreground:       color.RGBA{R: 0xe9, G: 0x45, B: 0x60, A: 0xff},
		TotalFrames:      200,
		FrameDelay:       80,
		Loop:             LoopOnce,
		NoiseEndFrac:     0.3,
		RevealEndFrac:    0.8,
		CaptionStartFrac: 0.5,
		CaptionFullFrac:  0.8,
		NoiseDensity:     20,
		NoiseCellW:       15,
		NoiseCellH:       20,
		GlyphGrid:        3,
		LetterSpacing:    3,
		CaptionMargin:    120,
		FontPath:         "/usr/share/fonts/truetype/dejavu/DejaVuSansMono-Bold.ttf",
		NoiseFontPath:    "/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		CaptionFontPath:  "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		FontSize:         135,
		NoiseFontSize:    21,
		CaptionFontSize:  24,
		LeftMargin:       50,
		CursorWidth:      15,
		CursorGap:        5,
		OutputPath:       "output/animation.gif",
		Workers:          runtime.NumCPU(),
		QRSize:           96,
	}
}

// DefaultTypewriter returns the typewriter configuration: a 900x200
// canvas at native resolution, 120ms per frame, looping forever.
func DefaultTypewriter() *Config {
	cfg := Default()
	cfg.Caption = "" // подпись рисует только вариант с проявлением букв
	cfg.Width = 900
	cfg.Height = 200
	cfg.RenderScale = 1.0
	cfg.FontSize = 80
	cfg.FrameDelay = 120
	cfg.Loop = LoopForever
	cfg.OutputPath = "output/typewriter.gif"
	return cfg
}

// Validate rejects configurations that must not start composing frames.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: размер холста должен быть положительным (%dx%d)", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TotalFrames <= 0 {
		return fmt.Errorf("%w: количество кадров должно быть положительным (%d)", ErrInvalidConfig, c.TotalFrames)
	}
	if c.Text == "" {
		return fmt.Errorf("%w: текст не задан", ErrInvalidConfig)
	}
	if c.RenderScale <= 0 {
		return fmt.Errorf("%w: масштаб рендеринга должен быть положительным (%g)", ErrInvalidConfig, c.RenderScale)
	}
	if c.FrameDelay <= 0 {
		return fmt.Errorf("%w: длительность кадра должна быть положительной (%d)", ErrInvalidConfig, c.FrameDelay)
	}
	return nil
}

// RenderWidth is the supersampled width frames are composited at before
// the downscale to the output canvas.
func (c *Config) RenderWidth() int {
	return int(float64(c.Width) * c.RenderScale)
}

func (c *Config) RenderHeight() int {
	return int(float64(c.Height) * c.RenderScale)
}

// ParseHexColor parses "#rrggbb" into an opaque RGBA.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: ожидается цвет вида #rrggbb, получено %q", ErrInvalidConfig, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: ожидается цвет вида #rrggbb, получено %q", ErrInvalidConfig, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
