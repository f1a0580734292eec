package pixelpipe

import "math"

// CompleteEdges extends a line sequence out to the image borders: it
// prepends evenly-spaced lines stepping back by typicalGap from the first
// detected line (dropping any that fall below 0), and symmetrically appends
// toward limit. The result always includes 0 and limit as terminal cell
// boundaries, sorted, unique, and clamped to [0, limit].
func CompleteEdges(lines []int, limit int, typicalGap float64, gapTolerance int) []int {
	out := append([]int(nil), lines...)

	if typicalGap <= 0 {
		out = append(out, 0, limit)
		return sortUniqueClamp(out, 0, limit)
	}

	tol := float64(gapTolerance)

	if len(out) == 0 {
		// No detected line to anchor on: reconstruct the full periodic grid
		// from the origin, stepping by typicalGap out to limit.
		for p := 0.0; p <= float64(limit); p += typicalGap {
			out = append(out, int(math.Round(p)))
		}
		out = append(out, 0, limit)
		return sortUniqueClamp(out, 0, limit)
	}

	first := out[0]
	if float64(first) > typicalGap-tol {
		for p := float64(first) - typicalGap; p >= 0; p -= typicalGap {
			out = append(out, int(math.Round(p)))
		}
	}

	last := out[len(out)-1]
	if float64(limit-last) > typicalGap-tol {
		for p := float64(last) + typicalGap; p <= float64(limit); p += typicalGap {
			out = append(out, int(math.Round(p)))
		}
	}

	out = append(out, 0, limit)
	return sortUniqueClamp(out, 0, limit)
}
