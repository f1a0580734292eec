package pixelpipe

import (
	"math"
	"sort"
)

// InterpolateLines adds missing interior lines where consecutive gaps are
// more than 1.5x the typical (median) gap, so that long runs without a
// detected line get evenly-spaced interior lines inserted. Per spec,
// fallbackGap is used only when the computed median gap is zero or
// non-finite (not merely because len(lines) < 2, which returns unchanged at
// step 1 regardless).
func InterpolateLines(lines []int, limit int, fallbackGap float64) []int {
	if len(lines) < 2 {
		return append([]int(nil), lines...)
	}

	gaps := make([]float64, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		gaps = append(gaps, float64(lines[i]-lines[i-1]))
	}
	g := median(gaps)
	if g == 0 || math.IsNaN(g) {
		g = fallbackGap
	}

	out := make([]int, 0, len(lines)*2)
	out = append(out, lines[0])
	for i := 1; i < len(lines); i++ {
		a, b := lines[i-1], lines[i]
		gap := float64(b - a)
		if gap > 1.5*g && g > 0 {
			count := int(math.Round(gap/g)) - 1
			if count > 0 {
				step := gap / float64(count+1)
				for j := 1; j <= count; j++ {
					p := float64(a) + step*float64(j)
					out = append(out, int(math.Round(p)))
				}
			}
		}
		out = append(out, b)
	}

	return sortUniqueClamp(out, 0, limit)
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

func sortUniqueClamp(xs []int, lo, hi int) []int {
	clamped := make([]int, len(xs))
	for i, v := range xs {
		clamped[i] = clampInt(v, lo, hi)
	}
	sort.Ints(clamped)

	out := clamped[:0:0]
	for i, v := range clamped {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
