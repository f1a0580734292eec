package pixelpipe

// DetectPeaks1D finds grid-line candidates in a 1-D energy profile.
//
// profile is first smoothed by a box filter of windowSize (must be odd; 1
// skips smoothing). A position is a candidate when it meets minThresholdRatio
// of the (smoothed) profile's max and is the local max over a window of
// gapSize centered on it. Candidates are then greedily accepted left to
// right: the next accepted position must be within [gapSize-gapTolerance,
// gapSize+gapTolerance] of the previous one; failing that, the strongest
// candidate strictly beyond prev+(gapSize-gapTolerance) is accepted instead.
// The result is strictly increasing.
func DetectPeaks1D(profile []float64, gapSize, gapTolerance int, minThresholdRatio float64, windowSize int) ([]int, error) {
	if windowSize < 1 || windowSize%2 == 0 {
		return nil, newError(InvalidParameter, "windowSize must be odd and >= 1, got %d", windowSize)
	}
	if minThresholdRatio < 0 || minThresholdRatio > 1 {
		return nil, newError(InvalidParameter, "minThresholdRatio must be in [0,1], got %v", minThresholdRatio)
	}
	if gapSize <= 0 {
		return nil, newError(InvalidParameter, "gapSize must be > 0, got %d", gapSize)
	}

	smoothed := profile
	if windowSize > 1 {
		smoothed = boxFilter(profile, windowSize)
	}

	n := len(smoothed)
	if n == 0 {
		return nil, nil
	}

	var maxV float64
	for _, v := range smoothed {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		// A flat-zero profile carries no structure at all: there is nothing
		// to call a peak, independent of how low the threshold ratio is.
		return nil, nil
	}
	thr := minThresholdRatio * maxV

	half := gapSize / 2
	var candidates []int
	for i := 0; i < n; i++ {
		if smoothed[i] < thr {
			continue
		}
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= n {
			hi = n - 1
		}
		isLocalMax := true
		for j := lo; j <= hi; j++ {
			if smoothed[j] > smoothed[i] {
				isLocalMax = false
				break
			}
		}
		if isLocalMax {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	accepted := []int{candidates[0]}
	minGap := float64(gapSize - gapTolerance)
	maxGap := float64(gapSize + gapTolerance)

	idx := 1
	for idx < len(candidates) {
		prev := accepted[len(accepted)-1]
		c := candidates[idx]
		dist := float64(c - prev)

		if dist >= minGap && dist <= maxGap {
			accepted = append(accepted, c)
			idx++
			continue
		}
		if dist < minGap {
			// Too close: skip this candidate, look further right.
			idx++
			continue
		}

		// dist > maxGap: accept the strongest candidate strictly beyond
		// prev + minGap, to avoid stalling on an over-wide gap forever.
		bestJ := -1
		var bestVal float64 = -1
		j := idx
		for j < len(candidates) {
			cc := candidates[j]
			if float64(cc-prev) <= minGap {
				j++
				continue
			}
			if smoothed[cc] > bestVal {
				bestVal = smoothed[cc]
				bestJ = j
			}
			j++
		}
		if bestJ < 0 {
			break
		}
		accepted = append(accepted, candidates[bestJ])
		idx = bestJ + 1
	}

	return accepted, nil
}

// boxFilter smooths profile with a box filter of the given odd width, using
// clamp-to-edge boundary handling.
func boxFilter(profile []float64, width int) []float64 {
	n := len(profile)
	out := make([]float64, n)
	r := width / 2
	for i := 0; i < n; i++ {
		var sum float64
		for k := -r; k <= r; k++ {
			j := clampInt(i+k, 0, n-1)
			sum += profile[j]
		}
		out[i] = sum / float64(width)
	}
	return out
}
