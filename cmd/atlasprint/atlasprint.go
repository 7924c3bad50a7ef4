// atlasprint composes an atlas from image files given on the command
// line and dumps it to the terminal, without going through the HTTP
// service. Files whose name carries a shadow suffix ("cat_shadow.png")
// are fed in as shadow images; everything else is a sprite.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/term"

	"github.com/ozx/atlasd/atlas"
	"github.com/ozx/atlasd/imageprint"
	"github.com/ozx/atlasd/match"
)

var (
	tileSize      = flag.Int("tile_size", 52, "side of one atlas cell in pixels")
	width         = flag.Int("width", 6, "atlas width in cells")
	sample        = flag.Int("sample", 1, "keep every Nth sprite")
	outline       = flag.Int("outline", 0, "outline radius in pixels, 0 to disable")
	removeColor   = flag.String("remove_color", "", "chroma key to remove, as #rrggbb")
	shadowScale   = flag.Float64("shadow_scale", 0, "scale of the synthesized shadow silhouette, 0 to disable")
	useShadows    = flag.Bool("use_shadow_images", false, "composite matched *_shadow files beneath their sprites")
	shadowPolicy  = flag.String("missing_shadow_policy", "skipShadow", "skipShadow, ignoreSprite or fail")
	useBackground = flag.Bool("use_background", false, "tile the -background image behind the sprites")
	background    = flag.String("background", "", "path to a background image")
	printReport   = flag.Bool("report", false, "print the composition report as JSON on stdout")
	asDataURL     = flag.Bool("data_url", false, "print the atlas as a PNG data URL instead of terminal graphics")
	useRasterm    = flag.Bool("rasterm", false, "draw with the terminal's native graphics protocol (Kitty, iTerm2, Sixel)")
	useITerm      = flag.Bool("iterm", false, "draw inline with iTerm2's escape sequence")
	col256        = flag.Bool("col256", false, "use the 256-color character renderer instead of 24-bit escapes")
	blanks        = flag.Bool("blanks", true, "use blank cells instead of luminance characters in the character renderers")
)

func main() {
	flagutil.Parse()

	in, err := gatherInput(flag.Args())
	if err != nil {
		glog.Exit(err)
	}

	p := atlas.DefaultParams()
	p.TileSize = *tileSize
	p.Width = *width
	p.Sample = *sample
	p.Outline = *outline
	p.RemoveColor = *removeColor
	p.ShadowScale = *shadowScale
	p.UseShadowImages = *useShadows
	p.MissingShadowPolicy = atlas.MissingShadowPolicy(*shadowPolicy)
	p.UseBackground = *useBackground
	p.PreviewMaxWidth = 0 // local tool, cap never applies

	canvas, report, err := atlas.Compose(in, p)
	if err != nil {
		glog.Exit(err)
	}

	if *printReport {
		if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
			glog.Exit(err)
		}
	}

	if *asDataURL {
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, canvas); err != nil {
			glog.Exit(err)
		}
		fmt.Println(dataurl.New(buf.Bytes(), "image/png").String())
		return
	}

	out(canvas)
}

// out renders the atlas with the selected terminal renderer. The
// graphics-protocol renderers get the image at native size; the
// character renderers get it shrunk to the terminal.
func out(img image.Image) {
	if *useRasterm {
		imageprint.PrintRasTerm(img)
	} else if *useITerm {
		imageprint.PrintITerm(img, "atlas.png")
	} else if *col256 {
		imageprint.Print256Color(downsize(img), *blanks)
	} else {
		imageprint.Print24bit(downsize(img), *blanks)
	}
}

// gatherInput splits the argument list into sprites and shadows by
// filename and reads the optional background.
func gatherInput(args []string) (atlas.Input, error) {
	var in atlas.Input
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return atlas.Input{}, err
		}
		name := filepath.Base(path)
		img := atlas.NamedImage{Name: name, Data: data}
		if normalized := match.Normalize(name); match.StripShadowSuffix(normalized) != normalized {
			in.Shadows = append(in.Shadows, img)
		} else {
			in.Sprites = append(in.Sprites, img)
		}
	}
	if *background != "" {
		data, err := os.ReadFile(*background)
		if err != nil {
			return atlas.Input{}, err
		}
		in.Background = &atlas.NamedImage{Name: filepath.Base(*background), Data: data}
	}
	return in, nil
}

// downsize shrinks the atlas to the terminal, two characters per
// pixel.
func downsize(img image.Image) image.Image {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 25
	}
	return resize.Thumbnail(uint(w/2), uint(h), img, resize.Lanczos3)
}
