package atlas

import (
	"image"
	"image/color"
	"testing"

	"github.com/ozx/atlasd/ttesting"
)

func solidTile(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestRows(t *testing.T) {
	ttesting.AssertEqualInt(t, "4 over 2", Rows(4, 2), 2)
	ttesting.AssertEqualInt(t, "5 over 2", Rows(5, 2), 3)
	ttesting.AssertEqualInt(t, "1 over 6", Rows(1, 6), 1)
	ttesting.AssertEqualInt(t, "0 over 6", Rows(0, 6), 0)
}

func TestCellRect(t *testing.T) {
	if got, want := CellRect(0, 2, 52), image.Rect(0, 0, 52, 52); got != want {
		t.Errorf("cell 0: got %v; want %v", got, want)
	}
	if got, want := CellRect(3, 2, 52), image.Rect(52, 52, 104, 104); got != want {
		t.Errorf("cell 3: got %v; want %v", got, want)
	}
}

func TestPackFourTiles(t *testing.T) {
	colors := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	tiles := make([]*image.NRGBA, len(colors))
	for i, c := range colors {
		tiles[i] = solidTile(52, c)
	}

	canvas := Pack(tiles, 2, 52, nil)

	ttesting.AssertEqualInt(t, "canvas width", canvas.Bounds().Dx(), 104)
	ttesting.AssertEqualInt(t, "canvas height", canvas.Bounds().Dy(), 104)
	ttesting.AssertPixel(t, "cell (0,0)", canvas, 0, 0, colors[0])
	ttesting.AssertPixel(t, "cell (52,0)", canvas, 52, 0, colors[1])
	ttesting.AssertPixel(t, "cell (0,52)", canvas, 0, 52, colors[2])
	ttesting.AssertPixel(t, "cell (52,52)", canvas, 52, 52, colors[3])
}

func TestPackTrailingCellsTransparent(t *testing.T) {
	tiles := []*image.NRGBA{
		solidTile(10, color.NRGBA{R: 255, A: 255}),
		solidTile(10, color.NRGBA{G: 255, A: 255}),
		solidTile(10, color.NRGBA{B: 255, A: 255}),
	}
	canvas := Pack(tiles, 2, 10, nil)

	ttesting.AssertEqualInt(t, "two rows", canvas.Bounds().Dy(), 20)
	// cell 3 (bottom right) holds no tile
	ttesting.AssertPixel(t, "trailing cell transparent", canvas, 15, 15, color.NRGBA{})
}

func TestTileBackgroundRepeatsAndClips(t *testing.T) {
	// 16x16 background over a 104x104 canvas: 7x7 repetitions, the
	// last column and row clipped
	bg := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	blue := color.NRGBA{B: 200, A: 255}
	for i := 0; i < len(bg.Pix); i += 4 {
		bg.Pix[i+2] = blue.B
		bg.Pix[i+3] = blue.A
	}
	// mark the background's origin pixel to observe the repetition
	mark := color.NRGBA{R: 255, A: 255}
	bg.SetNRGBA(0, 0, mark)

	canvas := image.NewNRGBA(image.Rect(0, 0, 104, 104))
	TileBackground(canvas, bg)

	ttesting.AssertPixel(t, "origin of tile (0,0)", canvas, 0, 0, mark)
	ttesting.AssertPixel(t, "origin of tile (1,0)", canvas, 16, 0, mark)
	ttesting.AssertPixel(t, "origin of tile (6,6)", canvas, 96, 96, mark)
	ttesting.AssertPixel(t, "clipped corner filled", canvas, 103, 103, blue)
	ttesting.AssertPixel(t, "body of a tile", canvas, 8, 8, blue)
}

func TestPreviewCap(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))

	ttesting.AssertEqualInt(t, "under cap untouched", Preview(img, 1024).Bounds().Dx(), 200)
	ttesting.AssertEqualInt(t, "cap disabled", Preview(img, 0).Bounds().Dx(), 200)

	scaled := Preview(img, 100)
	ttesting.AssertEqualInt(t, "scaled width", scaled.Bounds().Dx(), 100)
	ttesting.AssertEqualInt(t, "aspect preserved", scaled.Bounds().Dy(), 50)
}
