package pixelpipe

// GridLines holds the raw (pre-interpolation) detected line positions on
// each axis.
type GridLines struct {
	XLines []int
	YLines []int
}

// DetectGridLines builds the column/row profiles of a u8 heatmap, smooths
// them by smooth, and runs DetectPeaks1D with period s and gapTolerance on
// each to find the x/y grid lines.
func DetectGridLines(u8 []byte, width, height, s, gapTolerance int, minEnergy float64, smooth, windowSize int) (*GridLines, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidDimensions, "width and height must be > 0, got %dx%d", width, height)
	}
	if len(u8) != width*height {
		return nil, newError(InvalidDimensions, "u8 length %d does not match %dx%d", len(u8), width, height)
	}

	pxInt := columnProfile(u8, width, height)
	pyInt := rowProfile(u8, width, height)

	if smooth > 1 {
		pxInt = boxFilter(pxInt, smooth)
		pyInt = boxFilter(pyInt, smooth)
	}

	xLines, err := DetectPeaks1D(pxInt, s, gapTolerance, minEnergy, windowSize)
	if err != nil {
		return nil, err
	}
	yLines, err := DetectPeaks1D(pyInt, s, gapTolerance, minEnergy, windowSize)
	if err != nil {
		return nil, err
	}

	return &GridLines{XLines: xLines, YLines: yLines}, nil
}
