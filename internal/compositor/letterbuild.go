package compositor

import (
	"fmt"
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/text2gif/internal/config"
	"github.com/ivlev/text2gif/internal/glyph"
	"github.com/ivlev/text2gif/internal/noise"
	"github.com/ivlev/text2gif/internal/phase"
)

// LetterBuild renders the letter-materialization variant: ASCII snow
// fading in, letters constructed one by one out of symbol noise, then the
// full text held to the end. Frames are composited at the supersampled
// render size; the engine scales them down to the output canvas.
type LetterBuild struct {
	cfg   *config.Config
	fonts *glyph.Source
	tl    phase.Timeline
	runes []rune
	badge image.Image // optional QR overlay for hold frames
}

func NewLetterBuild(cfg *config.Config, fonts *glyph.Source) (*LetterBuild, error) {
	runes := []rune(cfg.Text)
	s := &LetterBuild{
		cfg:   cfg,
		fonts: fonts,
		runes: runes,
		tl: phase.New(cfg.TotalFrames, len(runes),
			cfg.NoiseEndFrac, cfg.RevealEndFrac, cfg.CaptionStartFrac, cfg.CaptionFullFrac),
	}

	if cfg.QRContent != "" {
		qr, err := qrcode.New(cfg.QRContent, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("qr-код: %w", err)
		}
		qr.BackgroundColor = cfg.Background
		qr.ForegroundColor = gray(0xc0)
		side := int(float64(cfg.QRSize) * cfg.RenderScale)
		s.badge = qr.Image(side)
	}

	return s, nil
}

// Timeline exposes the computed phase boundaries, e.g. for the YAML dump.
func (s *LetterBuild) Timeline() phase.Timeline {
	return s.tl
}

func (s *LetterBuild) Frames() int {
	return s.cfg.TotalFrames
}

func (s *LetterBuild) Render(f int) (*image.RGBA, error) {
	w, h := s.cfg.RenderWidth(), s.cfg.RenderHeight()
	img := newCanvas(w, h, s.cfg.Background)

	st := s.tl.At(f)
	switch st.Kind {
	case phase.KindNoise:
		s.drawSnow(img, f, st.Progress)
	case phase.KindReveal:
		s.drawReveal(img, f, st)
	case phase.KindHold:
		s.drawHold(img)
	}

	if s.cfg.Caption != "" {
		if op := s.tl.CaptionOpacity(f); op > 0 {
			s.drawCaption(img, op)
		}
	}

	return img, nil
}

// drawSnow fills a coarse grid with random symbols. Density and shade
// both grow with the phase progress, so the snow fades in from nothing.
func (s *LetterBuild) drawSnow(img *image.RGBA, f int, progress float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	threshold := uint32(float64(s.cfg.NoiseDensity) * progress)
	shade := gray(uint8(100 * progress))

	for y := 0; y < h; y += s.cfg.NoiseCellH {
		for x := 0; x < w; x += s.cfg.NoiseCellW {
			sel := noise.Select(x, y, f, 0)
			if sel%100 < threshold {
				ch := alphabet[sel%uint32(len(alphabet))]
				s.fonts.Noise.DrawAt(img, string(ch), x, y, shade)
			}
		}
	}
}

// drawReveal walks the visible prefix left to right. A letter still under
// construction gets a fine grid of symbol noise whose density follows its
// progress, plus the glyph itself dimmed from a low floor up to the full
// foreground color.
func (s *LetterBuild) drawReveal(img *image.RGBA, f int, st phase.State) {
	textW, textH := s.fonts.Primary.Measure(s.cfg.Text)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	startX := (w - textW) / 2
	startY := (h - textH) / 2
	baseline := startY + s.fonts.Primary.Ascent(s.cfg.Text)

	x := startX
	for i, r := range s.runes[:st.Letters] {
		letter := string(r)
		adv := s.fonts.Primary.Advance(letter)
		if r == ' ' {
			// Spaces contribute offset only.
			x += adv
			continue
		}

		lp := st.LetterProgress(i)
		if lp < 1 {
			lw, lh := s.fonts.Primary.Measure(letter)
			density := uint32(lp * 100)
			for dy := 0; dy < lh; dy += s.cfg.GlyphGrid {
				for dx := 0; dx < lw; dx += s.cfg.GlyphGrid {
					if noise.Select(dx, dy, f, i)%100 < density {
						// Symbol choice is frame-independent so cells do not flicker.
						ch := alphabet[noise.Select(dx, dy, 0, i)%glyphAlphabet]
						s.fonts.Noise.DrawAt(img, string(ch), x+dx, startY+dy, s.cfg.Foreground)
					}
				}
			}
			// 22..255 floor-to-full ramp, matching the snow-to-glyph handoff.
			shade := (22 + lp*233) / 255
			s.fonts.Primary.DrawBaseline(img, letter, x, baseline, scaleColor(s.cfg.Foreground, shade))
		} else {
			s.fonts.Primary.DrawBaseline(img, letter, x, baseline, s.cfg.Foreground)
		}

		x += adv + s.cfg.LetterSpacing
	}
}

func (s *LetterBuild) drawHold(img *image.RGBA) {
	textW, textH := s.fonts.Primary.Measure(s.cfg.Text)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	s.fonts.Primary.DrawAt(img, s.cfg.Text, (w-textW)/2, (h-textH)/2, s.cfg.Foreground)

	if s.badge != nil {
		b := s.badge.Bounds()
		margin := int(20 * s.cfg.RenderScale)
		at := image.Rect(w-b.Dx()-margin, h-b.Dy()-margin, w-margin, h-margin)
		draw.Draw(img, at, s.badge, b.Min, draw.Src)
	}
}

func (s *LetterBuild) drawCaption(img *image.RGBA, opacity float64) {
	capW, _ := s.fonts.Caption.Measure(s.cfg.Caption)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	margin := int(float64(s.cfg.CaptionMargin) * s.cfg.RenderScale)
	shade := gray(uint8(255 * opacity))
	s.fonts.Caption.DrawAt(img, s.cfg.Caption, (w-capW)/2, h-margin, shade)
}
