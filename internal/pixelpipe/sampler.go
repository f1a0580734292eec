package pixelpipe

import (
	"fmt"
	"math"
)

// SampleMode is a tagged variant over the four sampling rules a cell can be
// collapsed with. An integer encoding is exposed here for ABI stability at
// the external boundary (see spec's "Dynamic sampler-mode tag" redesign
// note).
type SampleMode int

const (
	SampleDirect SampleMode = iota
	SampleCenter
	SampleAverage
	SampleWeighted
)

func (m SampleMode) String() string {
	switch m {
	case SampleDirect:
		return "direct"
	case SampleCenter:
		return "center"
	case SampleAverage:
		return "average"
	case SampleWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// maxPixelArtDimension and maxPixelArtPixels bound the tiled output
// buildPixelArt allocates. A large upscaleFactor on an already-large grid
// multiplies out fast (a 500x500 grid at upscale 50 is 625M pixels, a 2.5GB
// RGBA buffer); refusing before the make() call turns that into a catchable
// AllocationFailure instead of an OOM kill.
const (
	maxPixelArtDimension = 1 << 16
	maxPixelArtPixels    = 64 << 20
)

// PixelArt is the sampler's output: RGB and RGBA buffers of outWidth *
// outHeight cells, each possibly tiled upscaleFactor x upscaleFactor times.
type PixelArt struct {
	Width          int
	Height         int
	RGB            []byte
	RGBA           []byte
	UpscaleFactor  int
}

// samplerParams bundles the options common to both sampler entry points.
type samplerParams struct {
	mode            SampleMode
	weightRatio     float32
	upscaleFactor   int
	nativeRes       bool
	propagateAlpha  bool
}

// SamplePixelArt collapses the cells bounded by consecutive entries of allX
// and allY into one output pixel each, per mode.
func SamplePixelArt(rgba []byte, width, height int, allX, allY []int, mode SampleMode, weightRatio float32, upscaleFactor int, nativeRes, propagateAlpha bool) (*PixelArt, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidDimensions, "width and height must be > 0, got %dx%d", width, height)
	}
	if len(rgba) != width*height*4 {
		return nil, newError(InvalidDimensions, "rgba length %d does not match %dx%d*4", len(rgba), width, height)
	}
	if len(allX) < 2 || len(allY) < 2 {
		return nil, &PipelineError{Kind: EmptyDetection, Msg: "sampler requires at least two line positions per axis"}
	}
	if err := validateSamplerParams(mode, weightRatio, upscaleFactor); err != nil {
		return nil, err
	}

	p := samplerParams{mode: mode, weightRatio: weightRatio, upscaleFactor: upscaleFactor, nativeRes: nativeRes, propagateAlpha: propagateAlpha}

	outW := len(allX) - 1
	outH := len(allY) - 1

	cellRGBA := make([][4]float64, outW*outH)
	for cy := 0; cy < outH; cy++ {
		y0, y1 := cellBounds(allY[cy], allY[cy+1], height)
		for cx := 0; cx < outW; cx++ {
			x0, x1 := cellBounds(allX[cx], allX[cx+1], width)
			cellRGBA[cy*outW+cx] = sampleCell(rgba, width, x0, y0, x1, y1, p)
		}
	}

	return buildPixelArt(cellRGBA, outW, outH, p)
}

// SamplePixelArtDirect collapses the regular targetW x targetH grid evenly
// dividing the image (used only for SampleDirect / "direct mode").
func SamplePixelArtDirect(rgba []byte, width, height, targetW, targetH int, weightRatio float32, upscaleFactor int, nativeRes, propagateAlpha bool) (*PixelArt, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidDimensions, "width and height must be > 0, got %dx%d", width, height)
	}
	if len(rgba) != width*height*4 {
		return nil, newError(InvalidDimensions, "rgba length %d does not match %dx%d*4", len(rgba), width, height)
	}
	if targetW <= 0 || targetH <= 0 {
		return nil, newError(InvalidDimensions, "targetW and targetH must be > 0, got %dx%d", targetW, targetH)
	}
	if err := validateSamplerParams(SampleDirect, weightRatio, upscaleFactor); err != nil {
		return nil, err
	}

	p := samplerParams{mode: SampleDirect, weightRatio: weightRatio, upscaleFactor: upscaleFactor, nativeRes: nativeRes, propagateAlpha: propagateAlpha}

	cellRGBA := make([][4]float64, targetW*targetH)
	for cy := 0; cy < targetH; cy++ {
		y0 := cy * height / targetH
		y1 := (cy + 1) * height / targetH
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for cx := 0; cx < targetW; cx++ {
			x0 := cx * width / targetW
			x1 := (cx + 1) * width / targetW
			if x1 <= x0 {
				x1 = x0 + 1
			}
			cellRGBA[cy*targetW+cx] = sampleCell(rgba, width, x0, y0, x1, y1, p)
		}
	}

	return buildPixelArt(cellRGBA, targetW, targetH, p)
}

func validateSamplerParams(mode SampleMode, weightRatio float32, upscaleFactor int) error {
	if mode < SampleDirect || mode > SampleWeighted {
		return newError(InvalidParameter, "unknown sample mode %d", int(mode))
	}
	if weightRatio < 1 {
		return newError(InvalidParameter, "sampleWeightRatio must be >= 1, got %v", weightRatio)
	}
	if upscaleFactor < 0 {
		return newError(InvalidParameter, "upscaleFactor must be >= 0, got %d", upscaleFactor)
	}
	return nil
}

// cellBounds clamps a raw [a,b) cell span to image bounds, enforcing a
// 1-pixel minimum span for empty cells (a == b).
func cellBounds(a, b, limit int) (int, int) {
	if a > b {
		a, b = b, a
	}
	a = clampInt(a, 0, limit)
	b = clampInt(b, 0, limit)
	if b <= a {
		b = a + 1
		if b > limit {
			b = limit
			a = b - 1
			if a < 0 {
				a = 0
			}
		}
	}
	return a, b
}

// sampleCell collapses rgba[x0:x1, y0:y1) into one RGBA value (as float64 in
// [0,255]) per the sampler mode. Direct mode samples identically to average.
func sampleCell(rgba []byte, width, x0, y0, x1, y1 int, p samplerParams) [4]float64 {
	switch p.mode {
	case SampleCenter:
		cx := (x0 + x1 - 1) / 2
		cy := (y0 + y1 - 1) / 2
		cx = clampInt(cx, x0, x1-1)
		cy = clampInt(cy, y0, y1-1)
		i := (cy*width + cx) * 4
		return [4]float64{float64(rgba[i]), float64(rgba[i+1]), float64(rgba[i+2]), float64(rgba[i+3])}

	case SampleAverage, SampleDirect:
		return averageCell(rgba, width, x0, y0, x1, y1)

	case SampleWeighted:
		return weightedCell(rgba, width, x0, y0, x1, y1, p.weightRatio)

	default:
		return averageCell(rgba, width, x0, y0, x1, y1)
	}
}

func averageCell(rgba []byte, width, x0, y0, x1, y1 int) [4]float64 {
	var sumR, sumG, sumB, sumA float64
	n := 0
	for y := y0; y < y1; y++ {
		row := y * width
		for x := x0; x < x1; x++ {
			i := (row + x) * 4
			sumR += float64(rgba[i])
			sumG += float64(rgba[i+1])
			sumB += float64(rgba[i+2])
			sumA += float64(rgba[i+3])
			n++
		}
	}
	if n == 0 {
		return [4]float64{}
	}
	return [4]float64{sumR / float64(n), sumG / float64(n), sumB / float64(n), sumA / float64(n)}
}

// rgbCubeDiagonal is the maximum possible Euclidean distance between two
// points in the 8-bit RGB cube: sqrt(255^2 * 3).
var rgbCubeDiagonal = math.Sqrt(3 * 255 * 255)

// weightedCell runs the two-phase weighted mean from spec §4.12: phase 1 is
// the arithmetic RGB mean, phase 2 reweights each sample by
// 1 + (weightRatio-1)*(1-d), d being the cell-diagonal-normalized Euclidean
// RGB distance to the phase-1 mean (normalized by the RGB cube's diagonal,
// so d is always in [0,1]). Alpha stays arithmetic.
func weightedCell(rgba []byte, width, x0, y0, x1, y1 int, weightRatio float32) [4]float64 {
	phase1 := averageCell(rgba, width, x0, y0, x1, y1)
	meanR, meanG, meanB := phase1[0], phase1[1], phase1[2]

	diag := rgbCubeDiagonal

	var sumWR, sumWG, sumWB, sumW, sumA float64
	n := 0
	for y := y0; y < y1; y++ {
		row := y * width
		for x := x0; x < x1; x++ {
			i := (row + x) * 4
			r, g, b, a := float64(rgba[i]), float64(rgba[i+1]), float64(rgba[i+2]), float64(rgba[i+3])

			dr := r - meanR
			dg := g - meanG
			db := b - meanB
			d := math.Sqrt(dr*dr+dg*dg+db*db) / diag
			if d > 1 {
				d = 1
			}
			w := 1 + float64(weightRatio-1)*(1-d)

			sumWR += w * r
			sumWG += w * g
			sumWB += w * b
			sumW += w
			sumA += a
			n++
		}
	}
	if n == 0 || sumW == 0 {
		return phase1
	}
	return [4]float64{sumWR / sumW, sumWG / sumW, sumWB / sumW, sumA / float64(n)}
}

// buildPixelArt converts per-cell float RGBA means into the final byte
// buffers, tiling by upscaleFactor when requested.
func buildPixelArt(cellRGBA [][4]float64, outW, outH int, p samplerParams) (art *PixelArt, err error) {
	upscale := p.upscaleFactor
	if upscale <= 0 {
		upscale = 1
	}
	if p.nativeRes {
		upscale = 1
	}

	finalW := outW * upscale
	finalH := outH * upscale

	if finalW > maxPixelArtDimension || finalH > maxPixelArtDimension || finalW*finalH > maxPixelArtPixels {
		return nil, newError(AllocationFailure, "upscale factor %d on a %dx%d grid would require a %dx%d output, exceeding the %d-pixel limit", upscale, outW, outH, finalW, finalH, maxPixelArtPixels)
	}

	// The size check above only catches a statically-too-large request. Any
	// panic raised while allocating or filling the buffers is recovered and
	// reported as AllocationFailure, the same kind as a statically-rejected
	// size. A Go runtime out-of-memory condition is a fatal error, not a
	// panic, and is not caught here.
	defer func() {
		if r := recover(); r != nil {
			art, err = nil, wrapError(AllocationFailure, fmt.Errorf("%v", r), "failed to allocate %dx%d output buffers", finalW, finalH)
		}
	}()

	rgb := make([]byte, finalW*finalH*3)
	rgba := make([]byte, finalW*finalH*4)

	for cy := 0; cy < outH; cy++ {
		for cx := 0; cx < outW; cx++ {
			v := cellRGBA[cy*outW+cx]
			r := roundByte(v[0])
			g := roundByte(v[1])
			b := roundByte(v[2])
			a := byte(255)
			if p.propagateAlpha {
				a = roundByte(v[3])
			}

			for ty := 0; ty < upscale; ty++ {
				py := cy*upscale + ty
				for tx := 0; tx < upscale; tx++ {
					px := cx*upscale + tx
					ri := (py*finalW + px) * 3
					rgb[ri] = r
					rgb[ri+1] = g
					rgb[ri+2] = b

					ai := (py*finalW + px) * 4
					rgba[ai] = r
					rgba[ai+1] = g
					rgba[ai+2] = b
					rgba[ai+3] = a
				}
			}
		}
	}

	return &PixelArt{
		Width:         finalW,
		Height:        finalH,
		RGB:           rgb,
		RGBA:          rgba,
		UpscaleFactor: upscale,
	}, nil
}

func roundByte(v float64) byte {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v + 0.5)
}
