// Package imageprint dumps atlas previews onto the terminal. It is a
// debugging aid for cmd/atlasprint with no API stability guarantees.
//
// Terminals with graphics support (Kitty, iTerm2/WezTerm, Sixel) get a
// real image via PrintRasTerm; everything else falls back to two
// characters per pixel with colored backgrounds.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"

	"github.com/gookit/color"
)

type printer interface {
	Printf(s string, arg ...interface{})
}

type plainPrinter struct{}

func (plainPrinter) Printf(s string, arg ...interface{}) {
	fmt.Printf(s, arg...)
}

var plain plainPrinter

// cell prints one pixel as a two-character cell. With trueColor the
// background is set with a 24-bit escape directly; otherwise gookit's
// RGB support picks the nearest displayable color. Fully transparent
// pixels reset the background.
func cell(col ic.Color, trueColor, blanks bool) {
	r, g, b, a := col.RGBA()
	if a == 0 {
		fmt.Printf("\x1b[0m  ")
		return
	}

	var p printer
	if trueColor {
		fmt.Printf("\x1b[48;2;%d;%d;%dm", uint8(r>>8), uint8(g>>8), uint8(b>>8))
		p = plain
	} else {
		p = color.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8), true)
	}

	if blanks {
		p.Printf("  ")
	} else {
		switch lum := (r + g + b) / 3 >> 8; {
		case lum < 32:
			p.Printf("..")
		case lum < 64:
			p.Printf("--")
		case lum < 128:
			p.Printf("==")
		default:
			p.Printf("##")
		}
	}
	if trueColor {
		fmt.Printf("\x1b[0m")
	}
}

// Print24bit draws an image using 24-bit color escape sequences.
func Print24bit(i image.Image, blanks bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			cell(i.At(x, y), true, blanks)
		}
		fmt.Printf("\x1b[0m\n")
	}
}

// Print256Color draws an image on terminals without 24-bit support.
func Print256Color(i image.Image, blanks bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			cell(i.At(x, y), false, blanks)
		}
		fmt.Printf("\x1b[0m\n")
	}
}

// PrintITerm draws an image inline using iTerm2's escape sequence.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	enc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(enc, i)
	enc.Close()
	fmt.Printf("\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n",
		name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}
