package phase

// TypeState is the per-frame decision of the typewriter variant.
type TypeState struct {
	Prefix int     // characters typed so far
	Cursor bool    // cursor block drawn this frame
	Fade   float64 // 0 while typing/holding, then a ramp to 1 (full background)
}

// TypeTimeline drives the typewriter variant: every prefix length gets
// one cursor-on frame followed by settle frames, then the complete text
// holds, then fades into the background.
type TypeTimeline struct {
	TextLen    int
	StepFrames int // frames persisted per typed character (first one has the cursor)
	HoldFrames int
	FadeFrames int
}

// NewTypewriter returns the default pacing: 4 frames per character step,
// 30 hold frames, 15 fade frames.
func NewTypewriter(textLen int) TypeTimeline {
	return TypeTimeline{TextLen: textLen, StepFrames: 4, HoldFrames: 30, FadeFrames: 15}
}

// Frames is the exact length of the produced sequence.
func (t TypeTimeline) Frames() int {
	return t.StepFrames*(t.TextLen+1) + t.HoldFrames + t.FadeFrames
}

// At returns the typewriter state for frame f.
func (t TypeTimeline) At(f int) TypeState {
	typing := t.StepFrames * (t.TextLen + 1)
	if f < typing {
		step := f / t.StepFrames
		on := f%t.StepFrames == 0
		// No cursor once the full string is typed.
		return TypeState{Prefix: step, Cursor: on && step < t.TextLen}
	}
	if f < typing+t.HoldFrames {
		return TypeState{Prefix: t.TextLen}
	}
	k := f - typing - t.HoldFrames
	if k >= t.FadeFrames {
		k = t.FadeFrames - 1
	}
	return TypeState{Prefix: t.TextLen, Fade: float64(k+1) / float64(t.FadeFrames)}
}
