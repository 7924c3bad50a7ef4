package sprite

import (
	"image"
	"image/color"
)

// RemoveColor makes every pixel whose RGB exactly equals key fully
// transparent, in place. The comparison ignores the pixel's alpha and
// there is no tolerance: a pixel one value off in any channel is left
// untouched.
func RemoveColor(img *image.NRGBA, key color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[i] == key.R && img.Pix[i+1] == key.G && img.Pix[i+2] == key.B {
				img.Pix[i] = 0
				img.Pix[i+1] = 0
				img.Pix[i+2] = 0
				img.Pix[i+3] = 0
			}
			i += 4
		}
	}
}
