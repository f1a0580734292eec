package pixelpipe

// EnhanceEnergyDirectional amplifies the response of horizontal-vs-vertical
// edge structure in E. When hFactor == vFactor == 1, the output equals the
// input exactly.
//
// Per spec §4.5 / §9, the "structure" signal used to build Hresp/Vresp is
// ambiguous between the pre-Sobel blurred energy and the post-Sobel gradient
// magnitude. useBlurredStructure selects between them:
//
//   - false (default, the literal reading of §4.5 step 2): Hresp/Vresp come
//     from the absolute Sobel gx/gy of the blurred energy Eb.
//   - true: Hresp/Vresp come from simple central-difference gradients of Eb
//     itself (coarser, cheaper, skips the inner Sobel pass).
func EnhanceEnergyDirectional(E []float32, width, height int, hFactor, vFactor float32, useBlurredStructure bool) ([]float32, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidDimensions, "width and height must be > 0, got %dx%d", width, height)
	}
	if len(E) != width*height {
		return nil, newError(InvalidDimensions, "E length %d does not match %dx%d", len(E), width, height)
	}

	blurKernel := GaussianKernel1D(1.0)
	Eb, err := ConvolveSeparable(E, width, height, blurKernel)
	if err != nil {
		return nil, err
	}

	var hResp, vResp []float32
	if useBlurredStructure {
		hResp, vResp = centralDiffResponse(Eb, width, height)
	} else {
		gx, gy, err := Sobel(Eb, width, height)
		if err != nil {
			return nil, err
		}
		hResp = make([]float32, width*height)
		vResp = make([]float32, width*height)
		for i := range hResp {
			hResp[i] = absF32(gx[i])
			vResp[i] = absF32(gy[i])
		}
	}

	normalizeMax(hResp)
	normalizeMax(vResp)

	out := make([]float32, width*height)
	for i := range out {
		out[i] = E[i] * (1 + (hFactor-1)*hResp[i] + (vFactor-1)*vResp[i])
	}
	return out, nil
}

// centralDiffResponse returns absolute horizontal and vertical central
// differences of img, clamp-to-edge at the borders.
func centralDiffResponse(img []float32, width, height int) (h, v []float32) {
	h = make([]float32, width*height)
	v = make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			xl := clampInt(x-1, 0, width-1)
			xr := clampInt(x+1, 0, width-1)
			yu := clampInt(y-1, 0, height-1)
			yd := clampInt(y+1, 0, height-1)
			h[y*width+x] = absF32(img[y*width+xr] - img[y*width+xl])
			v[y*width+x] = absF32(img[yd*width+x] - img[yu*width+x])
		}
	}
	return h, v
}

// normalizeMax scales s in-place to [0,1] by its own maximum, guarding
// against a zero max.
func normalizeMax(s []float32) {
	var max float32
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return
	}
	for i := range s {
		s[i] /= max
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
