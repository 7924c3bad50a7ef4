package sprite

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
)

// lightThreshold separates "paper white" from shadow content when a
// shadow image is prepared for compositing.
const lightThreshold = 180

// ScaleShadow returns a new buffer of the sprite's size holding a flat
// shadow-colored copy of the sprite's silhouette, scaled by scale and
// centered, with the sprite drawn on top. A scale of 1.1 yields a
// shadow poking out evenly around the sprite.
func ScaleShadow(img *image.NRGBA, scale float64, col color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	sw := int(float64(b.Dx()) * scale)
	sh := int(float64(b.Dy()) * scale)
	if sw > 0 && sh > 0 {
		silhouette := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			src := img.PixOffset(b.Min.X, b.Min.Y+y)
			dst := silhouette.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				if a := img.Pix[src+3]; a > 0 {
					silhouette.Pix[dst] = col.R
					silhouette.Pix[dst+1] = col.G
					silhouette.Pix[dst+2] = col.B
					silhouette.Pix[dst+3] = a
				}
				src += 4
				dst += 4
			}
		}
		scaled := resize.Resize(uint(sw), uint(sh), silhouette, resize.Lanczos3)
		offX := (b.Dx() - sw) / 2
		offY := (b.Dy() - sh) / 2
		draw.Draw(out, image.Rect(offX, offY, offX+sw, offY+sh), scaled, image.ZP, draw.Over)
	}

	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// DarkenShadow prepares a shadow image for compositing: pixels with
// all three channels above lightThreshold become fully transparent and
// everything else becomes black with opacity proportional to its
// darkness (255 minus the Rec. 601 luma). The input is not modified.
func DarkenShadow(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		dst := out.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			r, g, bl := img.Pix[src], img.Pix[src+1], img.Pix[src+2]
			if r > lightThreshold && g > lightThreshold && bl > lightThreshold {
				// stays transparent
			} else {
				gray := (299*int(r) + 587*int(g) + 114*int(bl)) / 1000
				out.Pix[dst+3] = uint8(255 - gray)
			}
			src += 4
			dst += 4
		}
	}
	return out
}

// ImageShadow composites a matched shadow image beneath the sprite and
// returns the result as a new buffer of the sprite's size. The shadow
// is darkened first and Lanczos-resized to the sprite's size when the
// dimensions differ.
func ImageShadow(img, shadow *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	prepared := image.Image(DarkenShadow(shadow))
	if prepared.Bounds().Size() != b.Size() {
		prepared = resize.Resize(uint(b.Dx()), uint(b.Dy()), prepared, resize.Lanczos3)
	}

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), prepared, prepared.Bounds().Min, draw.Over)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
