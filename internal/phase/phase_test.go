package phase

import (
	"math"
	"path/filepath"
	"testing"
)

// The reference scenario: "AB" over 10 frames with noise ending at 3 and
// reveal ending at 8.
func refTimeline() Timeline {
	return New(10, 2, 0.3, 0.8, 0.5, 0.8)
}

func TestBoundaries(t *testing.T) {
	tl := refTimeline()
	if tl.NoiseEnd != 3 || tl.RevealEnd != 8 {
		t.Fatalf("Expected boundaries 3/8, got %d/%d", tl.NoiseEnd, tl.RevealEnd)
	}
}

func TestNoisePhase(t *testing.T) {
	tl := refTimeline()
	expected := []float64{0.0, 1.0 / 3.0, 2.0 / 3.0}
	for f, want := range expected {
		s := tl.At(f)
		if s.Kind != KindNoise {
			t.Errorf("Frame %d: expected noise, got %v", f, s.Kind)
		}
		if math.Abs(s.Progress-want) > 1e-9 {
			t.Errorf("Frame %d: expected progress %.3f, got %.3f", f, want, s.Progress)
		}
	}
}

func TestRevealPhase(t *testing.T) {
	tl := refTimeline()

	s := tl.At(3)
	if s.Kind != KindReveal {
		t.Fatalf("Frame 3: expected reveal, got %v", s.Kind)
	}
	if s.Progress != 0 {
		t.Errorf("Frame 3: expected global progress 0, got %f", s.Progress)
	}
	if got := s.LetterProgress(0); got != 0 {
		t.Errorf("Frame 3 letter 0: expected 0, got %f", got)
	}
	if got := s.LetterProgress(1); got != 0 {
		t.Errorf("Frame 3 letter 1: expected clamp to 0, got %f", got)
	}

	s = tl.At(7)
	if math.Abs(s.Progress-0.8) > 1e-9 {
		t.Errorf("Frame 7: expected global progress 0.8, got %f", s.Progress)
	}
	if got := s.LetterProgress(0); got != 1 {
		t.Errorf("Frame 7 letter 0: expected fully formed, got %f", got)
	}
	if got := s.LetterProgress(1); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Frame 7 letter 1: expected 0.6, got %f", got)
	}
}

func TestHoldPhase(t *testing.T) {
	tl := refTimeline()
	for _, f := range []int{8, 9} {
		s := tl.At(f)
		if s.Kind != KindHold {
			t.Errorf("Frame %d: expected hold, got %v", f, s.Kind)
		}
		if s.Letters != 2 {
			t.Errorf("Frame %d: expected all letters, got %d", f, s.Letters)
		}
		for i := 0; i < 2; i++ {
			if s.LetterProgress(i) != 1 {
				t.Errorf("Frame %d letter %d: expected 1, got %f", f, i, s.LetterProgress(i))
			}
		}
	}
}

func TestMonotonicity(t *testing.T) {
	tl := New(200, 10, 0.3, 0.8, 0.5, 0.8)
	prev := KindNoise
	for f := 0; f < 200; f++ {
		k := tl.At(f).Kind
		if k < prev {
			t.Fatalf("Frame %d: phase went backwards (%v after %v)", f, k, prev)
		}
		prev = k
	}
	if prev != KindHold {
		t.Errorf("Terminal phase must be hold, got %v", prev)
	}
}

func TestProgressClamped(t *testing.T) {
	tl := New(200, 10, 0.3, 0.8, 0.5, 0.8)
	for f := 0; f < 200; f++ {
		s := tl.At(f)
		if s.Progress < 0 || s.Progress > 1 {
			t.Errorf("Frame %d: progress %f out of range", f, s.Progress)
		}
		for i := 0; i < 10; i++ {
			lp := s.LetterProgress(i)
			if lp < 0 || lp > 1 {
				t.Errorf("Frame %d letter %d: progress %f out of range", f, i, lp)
			}
		}
		op := tl.CaptionOpacity(f)
		if op < 0 || op > 1 {
			t.Errorf("Frame %d: caption opacity %f out of range", f, op)
		}
	}
}

func TestSingleFrameCollapsesToHold(t *testing.T) {
	tl := New(1, 5, 0.3, 0.8, 0.5, 0.8)
	s := tl.At(0)
	if s.Kind != KindHold {
		t.Fatalf("Expected immediate hold, got %v", s.Kind)
	}
	if s.Letters != 5 {
		t.Errorf("Expected full text, got %d letters", s.Letters)
	}
}

func TestCaptionRamp(t *testing.T) {
	tl := New(200, 10, 0.3, 0.8, 0.5, 0.8)
	if op := tl.CaptionOpacity(99); op != 0 {
		t.Errorf("Before window: expected 0, got %f", op)
	}
	if op := tl.CaptionOpacity(130); math.Abs(op-0.5) > 1e-9 {
		t.Errorf("Mid-window: expected 0.5, got %f", op)
	}
	// Stays at full opacity through the hold so hold frames do not differ.
	for _, f := range []int{160, 180, 199} {
		if op := tl.CaptionOpacity(f); op != 1 {
			t.Errorf("Frame %d: expected opacity 1, got %f", f, op)
		}
	}
}

func TestTypewriterFrameCount(t *testing.T) {
	tl := NewTypewriter(10)
	if got, want := tl.Frames(), 4*(10+1)+30+15; got != want {
		t.Errorf("Expected %d frames, got %d", want, got)
	}
}

func TestTypewriterStates(t *testing.T) {
	tl := NewTypewriter(2)

	// Step 0: empty prefix, cursor on the first frame only.
	if s := tl.At(0); s.Prefix != 0 || !s.Cursor {
		t.Errorf("Frame 0: expected cursor on empty prefix, got %+v", s)
	}
	for f := 1; f < 4; f++ {
		if s := tl.At(f); s.Prefix != 0 || s.Cursor {
			t.Errorf("Frame %d: expected settle frame, got %+v", f, s)
		}
	}

	// Final step: full prefix, no cursor even on the on-frame.
	if s := tl.At(8); s.Prefix != 2 || s.Cursor {
		t.Errorf("Frame 8: expected complete text without cursor, got %+v", s)
	}

	// Hold then fade.
	typing := 4 * 3
	if s := tl.At(typing + 5); s.Fade != 0 || s.Prefix != 2 {
		t.Errorf("Hold frame: got %+v", s)
	}
	last := tl.Frames() - 1
	if s := tl.At(last); s.Fade != 1 {
		t.Errorf("Last frame: expected full fade, got %+v", s)
	}
	first := typing + 30
	if s := tl.At(first); math.Abs(s.Fade-1.0/15.0) > 1e-9 {
		t.Errorf("First fade frame: expected 1/15, got %f", s.Fade)
	}
}

func TestTimelineWriteRead(t *testing.T) {
	tl := New(200, 10, 0.3, 0.8, 0.5, 0.8)
	path := filepath.Join(t.TempDir(), "timeline.yaml")

	if err := WriteTimeline(tl, path); err != nil {
		t.Fatalf("WriteTimeline failed: %v", err)
	}
	read, err := ReadTimeline(path)
	if err != nil {
		t.Fatalf("ReadTimeline failed: %v", err)
	}
	if read != tl {
		t.Errorf("Round trip mismatch: %+v != %+v", read, tl)
	}
}
