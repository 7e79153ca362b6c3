package compositor

import (
	"image"

	"github.com/ivlev/text2gif/internal/config"
	"github.com/ivlev/text2gif/internal/glyph"
	"github.com/ivlev/text2gif/internal/phase"
)

// Typewriter renders the character-by-character variant: each prefix
// length persists for a few frames with a blinking cursor block, the
// complete text holds, then everything fades into the background.
type Typewriter struct {
	cfg   *config.Config
	fonts *glyph.Source
	tl    phase.TypeTimeline
	runes []rune
}

func NewTypewriter(cfg *config.Config, fonts *glyph.Source) *Typewriter {
	runes := []rune(cfg.Text)
	return &Typewriter{
		cfg:   cfg,
		fonts: fonts,
		tl:    phase.NewTypewriter(len(runes)),
		runes: runes,
	}
}

func (s *Typewriter) Frames() int {
	return s.tl.Frames()
}

func (s *Typewriter) Render(f int) (*image.RGBA, error) {
	w, h := s.cfg.RenderWidth(), s.cfg.RenderHeight()
	img := newCanvas(w, h, s.cfg.Background)

	st := s.tl.At(f)
	_, textH := s.fonts.Primary.Measure(s.cfg.Text)
	// Margins and the cursor block are output-space sizes, scaled up to
	// the render canvas like the letter-build margins.
	scale := s.cfg.RenderScale
	startX := int(float64(s.cfg.LeftMargin) * scale)
	startY := (h - textH) / 2

	fg := s.cfg.Foreground
	if st.Fade > 0 {
		fg = lerpColor(fg, s.cfg.Background, st.Fade)
	}

	// Shared baseline from the full text so the prefix never shifts
	// vertically as characters are typed.
	baseline := startY + s.fonts.Primary.Ascent(s.cfg.Text)

	prefix := string(s.runes[:st.Prefix])
	if prefix != "" {
		s.fonts.Primary.DrawBaseline(img, prefix, startX, baseline, fg)
	}

	if st.Cursor {
		prefixW, _ := s.fonts.Primary.Measure(prefix)
		cursorX := startX + prefixW + int(float64(s.cfg.CursorGap)*scale)
		cursorW := int(float64(s.cfg.CursorWidth) * scale)
		fillRect(img, image.Rect(cursorX, startY, cursorX+cursorW, startY+textH), fg)
	}

	return img, nil
}
