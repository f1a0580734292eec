package imaging

import "image"

// ToRGBA packs img into a tightly-packed, straight-alpha RGBA byte buffer of
// length width*height*4, the shape pixelpipe.Image expects. Alpha is forced
// to 255 if the source has no alpha channel.
func ToRGBA(img image.Image) (rgba []byte, width, height int) {
	bounds := img.Bounds()
	width = bounds.Dx()
	height = bounds.Dy()
	rgba = make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*width + x) * 4
			rgba[i] = uint8(r >> 8)
			rgba[i+1] = uint8(g >> 8)
			rgba[i+2] = uint8(b >> 8)
			rgba[i+3] = uint8(a >> 8)
		}
	}
	return rgba, width, height
}

// FromRGBA builds an *image.RGBA from a tightly-packed RGBA byte buffer, the
// inverse of ToRGBA (and the shape pixelpipe.PixelArt.RGBA produces).
func FromRGBA(rgba []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)
	return img
}
