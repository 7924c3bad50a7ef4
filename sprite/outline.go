package sprite

import (
	"image"
	"image/color"
)

// Outline fills the fully-transparent pixels within radius of the
// sprite's opaque silhouette with a solid color, in place. The dilation
// uses a square structuring element of side 2*radius+1 (a max filter
// over the alpha channel), run as two separable passes. Pixels that
// already carry any alpha are never modified, so the sprite's interior
// and anti-aliased edges stay intact.
func Outline(img *image.NRGBA, radius int, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	alpha := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		i := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			alpha[y*w+x] = img.Pix[i+3]
			i += 4
		}
	}

	// horizontal max, then vertical max
	rowMax := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var m uint8
			for dx := x - radius; dx <= x+radius; dx++ {
				if dx < 0 || dx >= w {
					continue
				}
				if a := alpha[y*w+dx]; a > m {
					m = a
				}
			}
			rowMax[y*w+x] = m
		}
	}

	for y := 0; y < h; y++ {
		i := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			if alpha[y*w+x] == 0 {
				var m uint8
				for dy := y - radius; dy <= y+radius; dy++ {
					if dy < 0 || dy >= h {
						continue
					}
					if a := rowMax[dy*w+x]; a > m {
						m = a
					}
				}
				if m > 0 {
					img.Pix[i] = col.R
					img.Pix[i+1] = col.G
					img.Pix[i+2] = col.B
					img.Pix[i+3] = col.A
				}
			}
			i += 4
		}
	}
}
