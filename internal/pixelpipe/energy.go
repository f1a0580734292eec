package pixelpipe

import "math"

// GradEnergy computes the gradient-magnitude energy of gray: a Gaussian blur
// of sigma followed by Sobel, combined as sqrt(gx^2 + gy^2). Every element of
// the result is >= 0.
func GradEnergy(gray []float32, width, height int, sigma float32) ([]float32, error) {
	kernel := GaussianKernel1D(sigma)
	blurred, err := ConvolveSeparable(gray, width, height, kernel)
	if err != nil {
		return nil, err
	}

	gx, gy, err := Sobel(blurred, width, height)
	if err != nil {
		return nil, err
	}

	energy := make([]float32, width*height)
	for i := range energy {
		energy[i] = float32(math.Sqrt(float64(gx[i]*gx[i] + gy[i]*gy[i])))
	}
	return energy, nil
}
