package noise

import "testing"

func TestSelectDeterministic(t *testing.T) {
	inputs := [][4]int{
		{0, 0, 0, 0},
		{15, 20, 7, 0},
		{-3, 40, 199, 2},
		{1800, 900, 59, 9},
	}

	for _, in := range inputs {
		a := Select(in[0], in[1], in[2], in[3])
		b := Select(in[0], in[1], in[2], in[3])
		if a != b {
			t.Errorf("Select(%v) not stable: %d != %d", in, a, b)
		}
	}
}

func TestSelectExtraDisambiguates(t *testing.T) {
	// Adjacent letters share (dx, dy, frame); the letter index must decorrelate them.
	same := 0
	for dx := 0; dx < 30; dx += 3 {
		for dy := 0; dy < 40; dy += 3 {
			if Select(dx, dy, 10, 0) == Select(dx, dy, 10, 1) {
				same++
			}
		}
	}
	if same > 0 {
		t.Errorf("Expected no collisions between letter lanes, got %d", same)
	}
}

func TestSelectDistributionMod100(t *testing.T) {
	// Density gating takes the result mod 100. Check the buckets stay
	// roughly uniform over a frame-sized sweep of cells.
	buckets := make([]int, 100)
	n := 0
	for f := 0; f < 10; f++ {
		for y := 0; y < 900; y += 20 {
			for x := 0; x < 1800; x += 15 {
				buckets[Select(x, y, f, 0)%100]++
				n++
			}
		}
	}

	expected := float64(n) / 100.0
	for i, c := range buckets {
		ratio := float64(c) / expected
		if ratio < 0.8 || ratio > 1.2 {
			t.Errorf("Bucket %d badly skewed: %d of expected %.0f", i, c, expected)
		}
	}
}
