// Package sprite implements the per-sprite pixel pipeline that runs
// before a sprite is placed into an atlas cell: color-key removal,
// outline expansion, shadow compositing and fitting into a tile.
//
// All operations work on non-premultiplied *image.NRGBA buffers with a
// zero-based origin, which is what ToNRGBA produces.
package sprite

import (
	"image"
	"image/draw"
)

// ToNRGBA returns img as a zero-origin *image.NRGBA, copying only when
// the input is not already in that shape.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == image.ZP {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Clone returns a deep copy of img.
func Clone(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
