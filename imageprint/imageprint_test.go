package imageprint

import (
	"image"
	"image/color"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 40, A: 255})
	// (1,1) stays transparent to cover the background-reset path
	return img
}

func TestCharacterRenderers(t *testing.T) {
	// both renderers walk every pixel; crashing is the failure mode
	Print24bit(testImage(), true)
	Print24bit(testImage(), false)
	Print256Color(testImage(), true)
	Print256Color(testImage(), false)
}

func TestGraphicsRenderersOffTerminal(t *testing.T) {
	// under go test stdout is not an iTerm/Kitty/Sixel terminal, so
	// both must detect that and print no image payload
	PrintITerm(testImage(), "atlas.png")
	PrintRasTerm(testImage())
}
