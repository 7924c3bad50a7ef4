package sprite

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// FitTile returns a tileSize square buffer with the sprite anchored at
// the top left and the rest left transparent. Sprites larger than the
// tile in either dimension are Lanczos-downscaled to fit, preserving
// aspect ratio; smaller sprites are placed as-is.
func FitTile(img *image.NRGBA, tileSize int) *image.NRGBA {
	src := image.Image(img)
	b := img.Bounds()
	if b.Dx() > tileSize || b.Dy() > tileSize {
		src = resize.Thumbnail(uint(tileSize), uint(tileSize), img, resize.Lanczos3)
	}

	out := image.NewNRGBA(image.Rect(0, 0, tileSize, tileSize))
	sb := src.Bounds()
	draw.Draw(out, image.Rect(0, 0, sb.Dx(), sb.Dy()), src, sb.Min, draw.Over)
	return out
}
