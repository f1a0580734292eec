package pixelpipe

import (
	"errors"
	"testing"
)

// S1: constant image.
func TestRunPipeline_S1_ConstantImage(t *testing.T) {
	width, height := 16, 16
	rgba := makeRGBA(width, height, func(x, y int) [4]byte { return [4]byte{128, 128, 128, 255} })

	params := DefaultParams()
	params.Sigma = 1
	params.MinS, params.MaxS = 4, 8
	params.SampleMode = SampleAverage
	params.Sample = true
	params.PixelSize = 4
	params.Upscale = 1

	result, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, params, nil)
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}

	for i, v := range result.EnergyU8 {
		if v != 0 {
			t.Fatalf("EnergyU8[%d] = %d, want 0", i, v)
		}
	}
	if len(result.XLines) != 0 || len(result.YLines) != 0 {
		t.Errorf("expected empty raw line detections, got x=%v y=%v", result.XLines, result.YLines)
	}
	want := []int{0, 4, 8, 12, 16}
	if !intSliceEqual(result.AllXLines, want) || !intSliceEqual(result.AllYLines, want) {
		t.Errorf("got allX=%v allY=%v, want %v", result.AllXLines, result.AllYLines, want)
	}
	if result.PixelArt == nil || result.PixelArt.Width != 4 || result.PixelArt.Height != 4 {
		t.Fatalf("unexpected pixel art: %+v", result.PixelArt)
	}
	for i := 0; i < len(result.PixelArt.RGB); i += 3 {
		if result.PixelArt.RGB[i] != 128 || result.PixelArt.RGB[i+1] != 128 || result.PixelArt.RGB[i+2] != 128 {
			t.Errorf("cell %d not (128,128,128): %v", i/3, result.PixelArt.RGB[i:i+3])
		}
	}
}

// S2: perfect 8-pixel checkerboard.
func TestRunPipeline_S2_Checkerboard(t *testing.T) {
	width, height := 64, 64
	cell := 8
	rgba := makeRGBA(width, height, func(x, y int) [4]byte {
		if (x/cell+y/cell)%2 == 0 {
			return [4]byte{0, 0, 0, 255}
		}
		return [4]byte{255, 255, 255, 255}
	})

	params := DefaultParams()
	params.Sigma = 1.2
	params.MinS, params.MaxS = 4, 16
	params.PixelSize = 0
	params.Smooth = 3
	params.WindowSize = 7
	params.MinEnergy = 0.2
	params.GapTolerance = 2
	params.Sample = true
	params.SampleMode = SampleCenter
	params.Upscale = 1

	result, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, params, nil)
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}

	if result.DetectedPixelSize < cell-1 || result.DetectedPixelSize > cell+1 {
		t.Errorf("detectedPixelSize = %d, want ~%d", result.DetectedPixelSize, cell)
	}

	want := []int{0, 8, 16, 24, 32, 40, 48, 56, 64}
	if !intSliceEqual(result.AllXLines, want) {
		t.Errorf("allXLines = %v, want %v", result.AllXLines, want)
	}
	if !intSliceEqual(result.AllYLines, want) {
		t.Errorf("allYLines = %v, want %v", result.AllYLines, want)
	}

	if result.PixelArt.Width != 8 || result.PixelArt.Height != 8 {
		t.Fatalf("pixel art size = %dx%d, want 8x8", result.PixelArt.Width, result.PixelArt.Height)
	}
}

// S3: direct mode.
func TestRunPipeline_S3_DirectMode(t *testing.T) {
	width, height := 30, 30
	rgba := makeRGBA(width, height, func(x, y int) [4]byte {
		v := byte((x*8 + y*8) % 256)
		return [4]byte{v, v, v, 255}
	})

	params := DefaultParams()
	params.Sample = true
	params.SampleMode = SampleDirect
	params.PixelSize = 10

	result, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, params, nil)
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}

	if result.PixelArt == nil || result.PixelArt.Width != 3 || result.PixelArt.Height != 3 {
		t.Fatalf("unexpected pixel art: %+v", result.PixelArt)
	}
	for _, v := range result.EnergyU8 {
		if v != 0 {
			t.Fatal("expected all-zero EnergyU8 in direct mode")
		}
	}
	if len(result.XLines) != 0 || len(result.YLines) != 0 || len(result.AllXLines) != 0 || len(result.AllYLines) != 0 {
		t.Error("expected no grid lines in direct mode")
	}
}

// S4: degenerate grid — detection must not error; only the sampler, when
// invoked, surfaces EmptyDetection.
func TestRunPipeline_S4_DegenerateGrid(t *testing.T) {
	width, height := 12, 12
	rgba := makeRGBA(width, height, func(x, y int) [4]byte {
		v := byte((x*53 + y*97 + 13) % 256)
		return [4]byte{v, 255 - v, v / 2, 255}
	})

	params := DefaultParams()
	params.MinS, params.MaxS = 2, 3
	params.Sample = false

	if _, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, params, nil); err != nil {
		t.Fatalf("detection should not error even when degenerate, got: %v", err)
	}

	params.Sample = true
	params.MinEnergy = 0.99 // force near-impossible peak threshold
	_, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, params, nil)
	if err == nil {
		return // a real peak surviving the threshold is acceptable too
	}
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Kind != EmptyDetection {
		t.Errorf("got %v, want EmptyDetection", err)
	}
}

// S5: upscaled output tiles the 1x result.
func TestRunPipeline_S5_UpscaledMatchesBase(t *testing.T) {
	width, height := 64, 64
	cell := 8
	rgba := makeRGBA(width, height, func(x, y int) [4]byte {
		if (x/cell+y/cell)%2 == 0 {
			return [4]byte{0, 0, 0, 255}
		}
		return [4]byte{255, 255, 255, 255}
	})

	base := DefaultParams()
	base.MinS, base.MaxS = 4, 16
	base.Smooth = 3
	base.WindowSize = 7
	base.MinEnergy = 0.2
	base.GapTolerance = 2
	base.Sample = true
	base.SampleMode = SampleCenter
	base.Upscale = 1

	baseResult, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, base, nil)
	if err != nil {
		t.Fatalf("base RunPipeline failed: %v", err)
	}

	up := base
	up.Upscale = 4
	upResult, err := RunPipeline(Image{Width: width, Height: height, RGBA: rgba}, up, nil)
	if err != nil {
		t.Fatalf("upscaled RunPipeline failed: %v", err)
	}

	if upResult.PixelArt.Width != baseResult.PixelArt.Width*4 {
		t.Fatalf("upscaled width = %d, want %d", upResult.PixelArt.Width, baseResult.PixelArt.Width*4)
	}

	bw := baseResult.PixelArt.Width
	uw := upResult.PixelArt.Width
	for i := 0; i < baseResult.PixelArt.Height; i++ {
		for j := 0; j < bw; j++ {
			bi := (i*bw + j) * 3
			for a := 0; a < 4; a++ {
				for b := 0; b < 4; b++ {
					ui := ((i*4+a)*uw + (j*4 + b)) * 3
					if upResult.PixelArt.RGB[ui] != baseResult.PixelArt.RGB[bi] {
						t.Fatalf("block (%d,%d)+(%d,%d) mismatch", i, j, a, b)
					}
				}
			}
		}
	}
}

// S6: weighted mode pulls an outlier-contaminated cell back toward the
// majority color more than plain averaging would.
func TestRunPipeline_S6_WeightedMode(t *testing.T) {
	width, height := 8, 8
	rgba := makeRGBA(width, height, func(x, y int) [4]byte {
		idx := y*width + x
		if idx < 15 {
			return [4]byte{255, 0, 0, 255}
		}
		return [4]byte{128, 128, 128, 255}
	})

	allX := []int{0, width}
	allY := []int{0, height}

	avg, err := SamplePixelArt(rgba, width, height, allX, allY, SampleAverage, 2, 1, false, true)
	if err != nil {
		t.Fatal(err)
	}
	weighted, err := SamplePixelArt(rgba, width, height, allX, allY, SampleWeighted, 4, 1, false, true)
	if err != nil {
		t.Fatal(err)
	}

	if absInt(int(weighted.RGB[0])-128) >= absInt(int(avg.RGB[0])-128) {
		t.Errorf("weighted R=%d should be closer to 128 than average R=%d", weighted.RGB[0], avg.RGB[0])
	}
}

func TestRunPipeline_InvalidParameters(t *testing.T) {
	rgba := makeRGBA(8, 8, func(x, y int) [4]byte { return [4]byte{0, 0, 0, 255} })

	bad := DefaultParams()
	bad.Sigma = 0
	if _, err := RunPipeline(Image{Width: 8, Height: 8, RGBA: rgba}, bad, nil); err == nil {
		t.Error("expected error for sigma <= 0")
	}

	bad = DefaultParams()
	bad.Smooth = 4
	if _, err := RunPipeline(Image{Width: 8, Height: 8, RGBA: rgba}, bad, nil); err == nil {
		t.Error("expected error for even smooth")
	}
}
