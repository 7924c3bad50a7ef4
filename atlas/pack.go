package atlas

import (
	"image"
	"image/draw"

	"github.com/bradfitz/iter"
	"github.com/nfnt/resize"
)

// Rows returns the number of grid rows needed for n tiles at the given
// column count.
func Rows(n, width int) int {
	return (n + width - 1) / width
}

// CellRect returns the canvas rectangle of the i-th cell in row-major
// order: left to right, top to bottom.
func CellRect(i, width, tileSize int) image.Rectangle {
	x := (i % width) * tileSize
	y := (i / width) * tileSize
	return image.Rect(x, y, x+tileSize, y+tileSize)
}

// Pack lays the transformed tiles onto a fresh canvas of
// width*tileSize by Rows(len(tiles), width)*tileSize pixels. The
// background, when present, is tiled across the whole canvas first;
// sprites are then drawn over it cell by cell. Trailing cells beyond
// the last tile stay at the base layer (fully transparent without a
// background).
func Pack(tiles []*image.NRGBA, width, tileSize int, background image.Image) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, width*tileSize, Rows(len(tiles), width)*tileSize))
	if background != nil {
		TileBackground(canvas, background)
	}
	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		draw.Draw(canvas, CellRect(i, width, tileSize), tile, tile.Bounds().Min, draw.Over)
	}
	return canvas
}

// TileBackground repeats the background across the canvas at its
// native size, clipping at the right and bottom edges. The background
// is never stretched and never mutated.
func TileBackground(canvas *image.NRGBA, background image.Image) {
	bb := background.Bounds()
	if bb.Dx() < 1 || bb.Dy() < 1 {
		return
	}
	cb := canvas.Bounds()
	cols := (cb.Dx() + bb.Dx() - 1) / bb.Dx()
	rows := (cb.Dy() + bb.Dy() - 1) / bb.Dy()
	for ty := range iter.N(rows) {
		for tx := range iter.N(cols) {
			dst := image.Rect(
				tx*bb.Dx(), ty*bb.Dy(),
				(tx+1)*bb.Dx(), (ty+1)*bb.Dy(),
			).Intersect(cb)
			draw.Draw(canvas, dst, background, bb.Min, draw.Src)
		}
	}
}

// Preview downscales the canvas so its width does not exceed maxWidth,
// preserving aspect ratio. maxWidth <= 0 disables the cap, which is
// what export mode passes.
func Preview(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}
