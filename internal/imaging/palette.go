package imaging

import (
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DominantColorsLab extracts the count most common colors from img (reusing
// DominantColors' frequency counting) and orders them by perceptual Lab
// lightness rather than raw frequency, giving callers a human-ordered
// palette summary of a recovered pixel-art image.
func DominantColorsLab(img image.Image, count int, region *Region) (*DominantColorsResult, error) {
	result, err := DominantColors(img, count, region)
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Colors, func(i, j int) bool {
		li := labLightness(result.Colors[i].RGB)
		lj := labLightness(result.Colors[j].RGB)
		return li < lj
	})

	return result, nil
}

func labLightness(c RGBColor) float64 {
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, _, _ := col.Lab()
	return l
}
