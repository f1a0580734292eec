package pixelpipe

import "testing"

func TestDetectPeaks1D_RegularGrid(t *testing.T) {
	n := 80
	profile := make([]float64, n)
	for i := 0; i < n; i += 8 {
		profile[i] = 100
	}

	peaks, err := DetectPeaks1D(profile, 8, 2, 0.2, 5)
	if err != nil {
		t.Fatalf("DetectPeaks1D failed: %v", err)
	}
	if len(peaks) == 0 {
		t.Fatal("expected at least one peak")
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i] <= peaks[i-1] {
			t.Errorf("peaks not strictly increasing: %v", peaks)
		}
	}
}

func TestDetectPeaks1D_FlatProfileIsEmpty(t *testing.T) {
	profile := make([]float64, 40)
	peaks, err := DetectPeaks1D(profile, 8, 2, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(peaks) != 0 {
		t.Errorf("got %v, want no peaks for a flat-zero profile", peaks)
	}
}

func TestDetectPeaks1D_RejectsEvenWindowSize(t *testing.T) {
	if _, err := DetectPeaks1D(make([]float64, 10), 4, 1, 0.1, 4); err == nil {
		t.Error("expected error for even windowSize")
	}
}

func TestDetectPeaks1D_RejectsBadThresholdRatio(t *testing.T) {
	if _, err := DetectPeaks1D(make([]float64, 10), 4, 1, 1.5, 3); err == nil {
		t.Error("expected error for minThresholdRatio outside [0,1]")
	}
}

func TestBoxFilter_Smooths(t *testing.T) {
	profile := []float64{0, 0, 100, 0, 0}
	out := boxFilter(profile, 3)
	if out[2] >= 100 {
		t.Errorf("expected smoothing to reduce the spike, got %v", out[2])
	}
	if out[2] <= 0 {
		t.Errorf("expected the spike to spread into neighbors, got %v", out)
	}
}
