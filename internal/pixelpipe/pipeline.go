package pixelpipe

import "time"

// Image is the caller-owned source: a tightly packed, straight-alpha RGBA
// buffer of size Width*Height*4. Ownership transfers to the pipeline for the
// duration of the call only; the pipeline never retains a reference after
// RunPipeline returns.
type Image struct {
	Width  int
	Height int
	RGBA   []byte
}

// PipelineParams configures one invocation of RunPipeline. Zero value is not
// valid; use DefaultParams() and override fields.
type PipelineParams struct {
	Sigma float32

	EnhanceEnergy       bool
	EnhanceDirectional  bool
	EnhanceHorizontal   float32
	EnhanceVertical     float32
	// EnhanceUseBlurredStructure selects the alternate (non-default)
	// reading of §4.5's ambiguous structure signal. See SPEC_FULL.md §1.
	EnhanceUseBlurredStructure bool

	PixelSize uint32
	MinS      uint32
	MaxS      uint32

	GapTolerance uint32
	MinEnergy    float32
	Smooth       uint32
	WindowSize   uint32

	Sample            bool
	SampleMode        SampleMode
	SampleWeightRatio float32
	Upscale           uint32
	NativeRes         bool

	// PropagateAlpha selects averaged (true, the spec default) vs forced-255
	// (false) alpha in sampler output. See SPEC_FULL.md §1.
	PropagateAlpha bool
}

// DefaultParams returns a PipelineParams with the spec's documented
// defaults: sigma=1.2, no enhancement, auto pixel size search in [4,32],
// gapTolerance=2, minEnergy=0.15, smooth=3, windowSize=5, average sampling,
// auto upscale, averaged alpha.
func DefaultParams() PipelineParams {
	return PipelineParams{
		Sigma:              1.2,
		EnhanceEnergy:      false,
		EnhanceDirectional: false,
		EnhanceHorizontal:  1.5,
		EnhanceVertical:    1.5,
		PixelSize:          0,
		MinS:               4,
		MaxS:               32,
		GapTolerance:       2,
		MinEnergy:          0.15,
		Smooth:             3,
		WindowSize:         5,
		Sample:             true,
		SampleMode:         SampleAverage,
		SampleWeightRatio:  2.0,
		Upscale:            0,
		NativeRes:          false,
		PropagateAlpha:     true,
	}
}

// PipelineResult is the output of RunPipeline.
type PipelineResult struct {
	Width  int
	Height int

	DetectedPixelSize int

	EnergyU8 []byte

	XLines []int
	YLines []int

	AllXLines []int
	AllYLines []int

	PixelArt *PixelArt
}

// StageObserver is invoked between stages (never from inner loops) with the
// stage name and the elapsed wall time it took.
type StageObserver func(stage string, elapsed time.Duration)

// validate checks PipelineParams for the error kinds defined in §7. It never
// has side effects.
func (p *PipelineParams) validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return newError(InvalidDimensions, "width and height must be > 0, got %dx%d", width, height)
	}
	if p.Sigma <= 0 {
		return newError(InvalidParameter, "sigma must be > 0, got %v", p.Sigma)
	}
	if p.MinEnergy < 0 || p.MinEnergy > 1 {
		return newError(InvalidParameter, "minEnergy must be in [0,1], got %v", p.MinEnergy)
	}
	if p.SampleWeightRatio < 1 {
		return newError(InvalidParameter, "sampleWeightRatio must be >= 1, got %v", p.SampleWeightRatio)
	}
	if p.Smooth%2 == 0 {
		return newError(InvalidParameter, "smooth must be odd, got %d", p.Smooth)
	}
	if p.WindowSize%2 == 0 {
		return newError(InvalidParameter, "windowSize must be odd, got %d", p.WindowSize)
	}
	if p.PixelSize == 0 {
		if p.MinS < 1 || p.MinS > p.MaxS {
			return newError(InvalidDimensions, "require 1 <= minS(%d) <= maxS(%d)", p.MinS, p.MaxS)
		}
		maxAllowed := uint32(min(width, height) / 2)
		if p.MaxS > maxAllowed {
			return newError(InvalidDimensions, "maxS(%d) exceeds min(W,H)/2(%d)", p.MaxS, maxAllowed)
		}
	}
	return nil
}

// RunPipeline is the core entry point: grayscale -> energy -> (optional
// enhance) -> heatmap -> pixel-size estimate -> grid-line detect ->
// interpolate -> complete -> sample. observer may be nil.
func RunPipeline(img Image, params PipelineParams, observer StageObserver) (*PipelineResult, error) {
	if err := params.validate(img.Width, img.Height); err != nil {
		return nil, err
	}
	if len(img.RGBA) != img.Width*img.Height*4 {
		return nil, newError(InvalidDimensions, "rgba length %d does not match %dx%d*4", len(img.RGBA), img.Width, img.Height)
	}

	width, height := img.Width, img.Height

	result := &PipelineResult{Width: width, Height: height}

	directMode := params.Sample && params.SampleMode == SampleDirect
	if directMode {
		return runDirectMode(img, params, result)
	}

	report := func(stage string, start time.Time) {
		if observer != nil {
			observer(stage, time.Since(start))
		}
	}

	t0 := time.Now()
	gray, err := RGBAToGray(img.RGBA, width, height)
	if err != nil {
		return nil, err
	}
	report("grayscale", t0)

	t0 = time.Now()
	energy, err := GradEnergy(gray, width, height, params.Sigma)
	if err != nil {
		return nil, err
	}
	report("energy", t0)

	if params.EnhanceEnergy {
		t0 = time.Now()
		hFactor, vFactor := params.EnhanceHorizontal, params.EnhanceVertical
		if !params.EnhanceDirectional {
			hFactor, vFactor = 1.5, 1.5
		}
		energy, err = EnhanceEnergyDirectional(energy, width, height, hFactor, vFactor, params.EnhanceUseBlurredStructure)
		if err != nil {
			return nil, err
		}
		report("enhance", t0)
	}

	t0 = time.Now()
	heatmap := ToHeatmapU8(energy)
	result.EnergyU8 = heatmap
	report("quantize", t0)

	t0 = time.Now()
	var s int
	if params.PixelSize > 0 {
		s = int(params.PixelSize)
	} else {
		s, err = DetectPixelSize(heatmap, width, height, int(params.MinS), int(params.MaxS))
		if err != nil {
			return nil, err
		}
	}
	result.DetectedPixelSize = s
	report("pixel-size", t0)

	t0 = time.Now()
	lines, err := DetectGridLines(heatmap, width, height, s, int(params.GapTolerance), float64(params.MinEnergy), int(params.Smooth), int(params.WindowSize))
	if err != nil {
		return nil, err
	}
	result.XLines = lines.XLines
	result.YLines = lines.YLines
	report("grid-lines", t0)

	t0 = time.Now()
	allX := InterpolateLines(lines.XLines, width, float64(s))
	allY := InterpolateLines(lines.YLines, height, float64(s))
	report("interpolate", t0)

	t0 = time.Now()
	allX = CompleteEdges(allX, width, float64(s), int(params.GapTolerance))
	allY = CompleteEdges(allY, height, float64(s), int(params.GapTolerance))
	result.AllXLines = allX
	result.AllYLines = allY
	report("complete-edges", t0)

	if !params.Sample {
		return result, nil
	}

	// With an explicit PixelSize, edge completion builds the grid from that
	// size alone; only an auto-detected size depends on the detected lines.
	if params.PixelSize == 0 && (len(lines.XLines) < 2 || len(lines.YLines) < 2) {
		return nil, &PipelineError{Kind: EmptyDetection, Msg: "fewer than two lines detected on an axis; retry with looser thresholds or direct mode"}
	}

	t0 = time.Now()
	upscale := int(params.Upscale)
	if upscale == 0 {
		upscale = s
	}
	art, err := SamplePixelArt(img.RGBA, width, height, allX, allY, params.SampleMode, params.SampleWeightRatio, upscale, params.NativeRes, params.PropagateAlpha)
	if err != nil {
		return nil, err
	}
	result.PixelArt = art
	report("sample", t0)

	return result, nil
}

// runDirectMode implements the direct-mode contract: stages 1-4, 7, 8 are
// skipped; energyU8 is zero-filled; line sets are empty; the sampler runs on
// a regular grid sized by pixelSize (default 8 if 0).
func runDirectMode(img Image, params PipelineParams, result *PipelineResult) (*PipelineResult, error) {
	pixelSize := int(params.PixelSize)
	if pixelSize <= 0 {
		pixelSize = 8
	}

	result.EnergyU8 = make([]byte, img.Width*img.Height)
	result.XLines = nil
	result.YLines = nil
	result.AllXLines = nil
	result.AllYLines = nil
	result.DetectedPixelSize = pixelSize

	targetW := img.Width / pixelSize
	targetH := img.Height / pixelSize
	if targetW <= 0 || targetH <= 0 {
		return nil, newError(InvalidDimensions, "pixelSize %d too large for image %dx%d", pixelSize, img.Width, img.Height)
	}

	upscale := int(params.Upscale)
	if upscale == 0 {
		upscale = 1
	}

	art, err := SamplePixelArtDirect(img.RGBA, img.Width, img.Height, targetW, targetH, params.SampleWeightRatio, upscale, params.NativeRes, params.PropagateAlpha)
	if err != nil {
		return nil, err
	}
	result.PixelArt = art

	return result, nil
}
