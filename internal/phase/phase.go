package phase

// Kind names the stage of the letter-build animation a frame belongs to.
type Kind int

const (
	KindNoise  Kind = iota // random ASCII snow fading in
	KindReveal             // letters constructed one by one
	KindHold               // full text, stable until the end
)

func (k Kind) String() string {
	switch k {
	case KindNoise:
		return "noise"
	case KindReveal:
		return "reveal"
	default:
		return "hold"
	}
}

// State is the phase decision for a single frame. It is derived from the
// frame index alone and never persisted.
type State struct {
	Kind     Kind
	Progress float64 // phase-local progress in [0, 1]
	Letters  int     // characters visible (reveal/hold)
	textLen  int
}

// LetterProgress returns how far letter i has materialized, in [0, 1].
// During reveal the letters form left to right, each one lagging the
// global progress by its index.
func (s State) LetterProgress(i int) float64 {
	switch s.Kind {
	case KindHold:
		return 1
	case KindReveal:
		return clamp01(s.Progress*float64(s.textLen) - float64(i))
	default:
		return 0
	}
}

// Timeline fixes the phase boundaries of one run as frame indices. All
// boundaries are computed once, before any frame is composited, and are
// never re-derived mid-run.
type Timeline struct {
	TotalFrames  int `yaml:"total_frames"`
	TextLen      int `yaml:"text_len"`
	NoiseEnd     int `yaml:"noise_end"`
	RevealEnd    int `yaml:"reveal_end"`
	CaptionStart int `yaml:"caption_start"`
	CaptionFull  int `yaml:"caption_full"`
}

// New derives the boundary frames from the configured fractions.
// A single-frame run collapses straight to hold.
func New(totalFrames, textLen int, noiseFrac, revealFrac, capStartFrac, capFullFrac float64) Timeline {
	tl := Timeline{
		TotalFrames:  totalFrames,
		TextLen:      textLen,
		NoiseEnd:     int(noiseFrac * float64(totalFrames)),
		RevealEnd:    int(revealFrac * float64(totalFrames)),
		CaptionStart: int(capStartFrac * float64(totalFrames)),
		CaptionFull:  int(capFullFrac * float64(totalFrames)),
	}
	if tl.RevealEnd > totalFrames {
		tl.RevealEnd = totalFrames
	}
	if tl.NoiseEnd > tl.RevealEnd {
		tl.NoiseEnd = tl.RevealEnd
	}
	if totalFrames <= 1 {
		tl.NoiseEnd, tl.RevealEnd = 0, 0
	}
	return tl
}

// At returns the phase state for frame f. Transitions are monotonic in f:
// noise, then reveal, then hold, never backwards.
func (t Timeline) At(f int) State {
	if f >= t.RevealEnd {
		return State{Kind: KindHold, Progress: 1, Letters: t.TextLen, textLen: t.TextLen}
	}
	if f < t.NoiseEnd {
		return State{Kind: KindNoise, Progress: clamp01(float64(f) / float64(t.NoiseEnd))}
	}

	p := clamp01(float64(f-t.NoiseEnd) / float64(t.RevealEnd-t.NoiseEnd))
	letters := int(p*float64(t.TextLen)) + 1
	if letters > t.TextLen {
		letters = t.TextLen
	}
	return State{Kind: KindReveal, Progress: p, Letters: letters, textLen: t.TextLen}
}

// CaptionOpacity is the caption fade ramp for frame f: zero before the
// window opens, a linear climb to one, then held at one so hold frames
// stay pixel-identical.
func (t Timeline) CaptionOpacity(f int) float64 {
	if f < t.CaptionStart {
		return 0
	}
	if t.CaptionFull <= t.CaptionStart {
		return 1
	}
	return clamp01(float64(f-t.CaptionStart) / float64(t.CaptionFull-t.CaptionStart))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
