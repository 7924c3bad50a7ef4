// Package ttesting holds the tiny assertion helpers shared by the
// package tests.
package ttesting

import (
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualStrings(t *testing.T, name string, got, want []string) {
	t.Run(name, func(t *testing.T) {
		if len(got) != len(want) {
			t.Errorf("got %q; want %q", got, want)
			return
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("got %q; want %q", got, want)
				return
			}
		}
	})
}

// AssertPixel compares the non-premultiplied color of one pixel.
func AssertPixel(t *testing.T, name string, img image.Image, x, y int, want color.NRGBA) {
	t.Run(name, func(t *testing.T) {
		got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if got != want {
			t.Errorf("pixel (%d,%d): got %v; want %v", x, y, got, want)
		}
	})
}
