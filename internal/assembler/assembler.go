package assembler

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"github.com/ivlev/text2gif/internal/config"
)

// ErrEncode covers the precondition violations of the encoding stage: an
// empty frame list or dimensionally-inconsistent frames. Both abort the
// run; nothing is written.
var ErrEncode = errors.New("ошибка кодирования анимации")

// Sequence accumulates composited frames with their display durations and
// the loop directive, then encodes the whole animation in one step. It
// performs no pixel synthesis of its own, only sequencing, quantization
// and metadata assignment.
type Sequence struct {
	frames  []*image.Paletted
	delays  []int // per frame, in 10ms GIF ticks
	loop    config.Loop
	palette color.Palette
	bounds  image.Rectangle
}

// New returns an empty sequence with a palette derived from the two
// configured colors. The palette is deterministic, so quantization never
// introduces run-to-run differences.
func New(bg, fg color.RGBA, loop config.Loop) *Sequence {
	return &Sequence{
		loop:    loop,
		palette: buildPalette(bg, fg),
	}
}

// Add quantizes one frame onto the sequence palette and appends it with
// its display duration. The first frame fixes the canvas size; any later
// mismatch is an encode error.
func (s *Sequence) Add(img image.Image, delayMS int) error {
	b := img.Bounds()
	if len(s.frames) == 0 {
		s.bounds = image.Rect(0, 0, b.Dx(), b.Dy())
	} else if b.Dx() != s.bounds.Dx() || b.Dy() != s.bounds.Dy() {
		return fmt.Errorf("%w: кадр %d имеет размер %dx%d вместо %dx%d",
			ErrEncode, len(s.frames), b.Dx(), b.Dy(), s.bounds.Dx(), s.bounds.Dy())
	}

	pal := image.NewPaletted(s.bounds, s.palette)
	draw.Draw(pal, s.bounds, img, b.Min, draw.Src)
	s.frames = append(s.frames, pal)
	s.delays = append(s.delays, delayMS/10)
	return nil
}

func (s *Sequence) Len() int {
	return len(s.frames)
}

// TotalDurationMS is the sum of all frame durations.
func (s *Sequence) TotalDurationMS() int {
	total := 0
	for _, d := range s.delays {
		total += d * 10
	}
	return total
}

// Encode writes the animated GIF. The loop directive maps to the GIF
// Netscape extension: forever is 0, play-once omits the extension (-1).
func (s *Sequence) Encode(w io.Writer) error {
	if len(s.frames) == 0 {
		return fmt.Errorf("%w: пустая последовательность кадров", ErrEncode)
	}

	loopCount := -1
	if s.loop == config.LoopForever {
		loopCount = 0
	}

	g := &gif.GIF{
		Image:     s.frames,
		Delay:     s.delays,
		LoopCount: loopCount,
		Config: image.Config{
			ColorModel: s.palette,
			Width:      s.bounds.Dx(),
			Height:     s.bounds.Dy(),
		},
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// WriteFile encodes into a temporary file next to path and renames it
// into place, so a failed run never leaves a partial artifact behind.
func (s *Sequence) WriteFile(path string) error {
	if len(s.frames) == 0 {
		return fmt.Errorf("%w: пустая последовательность кадров", ErrEncode)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".text2gif_*.gif")
	if err != nil {
		return err
	}
	if err := s.Encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// buildPalette lays out the color ramps one run can produce: the glyph
// ramp from black to the foreground, the grayscale ramp of the snow and
// caption, and the foreground-to-background ramp of the typewriter fade.
func buildPalette(bg, fg color.RGBA) color.Palette {
	p := make(color.Palette, 0, 256)
	p = append(p, bg)

	for i := 0; i < 96; i++ {
		t := float64(i) / 95
		p = append(p, color.RGBA{
			R: uint8(float64(fg.R) * t),
			G: uint8(float64(fg.G) * t),
			B: uint8(float64(fg.B) * t),
			A: 0xff,
		})
	}
	for i := 0; i < 64; i++ {
		v := uint8(i * 255 / 63)
		p = append(p, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	for i := 0; i < 48; i++ {
		t := float64(i) / 47
		p = append(p, color.RGBA{
			R: uint8(float64(fg.R) + (float64(bg.R)-float64(fg.R))*t),
			G: uint8(float64(fg.G) + (float64(bg.G)-float64(fg.G))*t),
			B: uint8(float64(fg.B) + (float64(bg.B)-float64(fg.B))*t),
			A: 0xff,
		})
	}

	return p
}
