package pixelpipe

import "testing"

func TestDetectGridLines_Checkerboard(t *testing.T) {
	width, height := 64, 64
	period := 8
	u8 := buildCheckerboardU8(width, height, period)

	lines, err := DetectGridLines(u8, width, height, period, 2, 0.2, 3, 7)
	if err != nil {
		t.Fatalf("DetectGridLines failed: %v", err)
	}
	if len(lines.XLines) == 0 {
		t.Error("expected x lines to be detected")
	}
	if len(lines.YLines) == 0 {
		t.Error("expected y lines to be detected")
	}
	assertStrictlyIncreasing(t, lines.XLines)
	assertStrictlyIncreasing(t, lines.YLines)
}

func assertStrictlyIncreasing(t *testing.T, xs []int) {
	t.Helper()
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			t.Errorf("not strictly increasing: %v", xs)
			return
		}
	}
}

func TestDetectGridLines_DimensionMismatch(t *testing.T) {
	if _, err := DetectGridLines(make([]byte, 3), 2, 2, 2, 1, 0.1, 1, 3); err == nil {
		t.Error("expected error")
	}
}
