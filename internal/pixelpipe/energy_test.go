package pixelpipe

import "testing"

func TestGradEnergy_NonNegative(t *testing.T) {
	width, height := 16, 16
	gray := make([]float32, width*height)
	for i := range gray {
		gray[i] = float32((i*13 + 7) % 100) / 100
	}

	energy, err := GradEnergy(gray, width, height, 1.0)
	if err != nil {
		t.Fatalf("GradEnergy failed: %v", err)
	}
	for i, v := range energy {
		if v < 0 {
			t.Errorf("energy[%d] = %v, want >= 0", i, v)
		}
	}
}

func TestGradEnergy_ConstantImageIsZero(t *testing.T) {
	width, height := 16, 16
	gray := make([]float32, width*height)
	for i := range gray {
		gray[i] = 0.5
	}

	energy, err := GradEnergy(gray, width, height, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range energy {
		if v != 0 {
			t.Errorf("energy[%d] = %v, want 0 for a constant image", i, v)
		}
	}
}
