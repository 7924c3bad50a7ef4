// Package atlas composes individually-sized sprite images into one
// packed atlas image on a fixed tile grid, with optional per-sprite
// effects and per-sprite shadows, and reports what it had to drop or
// could not match along the way.
//
// The engine is a pure function of its inputs: it holds no state
// across invocations and may be called concurrently.
package atlas

import (
	"bytes"
	"image"
	"image/color"
	"runtime"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/ozx/atlasd/match"
	"github.com/ozx/atlasd/sprite"
)

// NamedImage is one uploaded file: its original filename and the raw
// encoded bytes.
type NamedImage struct {
	Name string
	Data []byte
}

// Input is everything one composition consumes.
type Input struct {
	Sprites    []NamedImage
	Shadows    []NamedImage
	Background *NamedImage
}

var (
	outlineColor = color.NRGBA{A: 255}
	shadowColor  = color.NRGBA{A: 255}
)

// Compose runs the full pipeline: sampling, decoding, shadow matching,
// per-sprite transforms and grid packing. It returns the composed
// canvas at full size (preview scaling is the caller's call, see
// Preview) together with the diagnostic report.
//
// Sampling is the first filter: only sprites at original indices
// 0, sample, 2*sample, ... enter the pipeline, silently. Everything
// dropped after that point shows up in the report. Under the Fail
// policy the first sprite without a committed shadow match aborts the
// whole run and no canvas is returned.
func Compose(in Input, p Params) (image.Image, *Report, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	report := &Report{}

	sampled := sampleSprites(in.Sprites, p.Sample)
	glog.V(1).Infof("composing atlas: %d of %d sprites after sampling (sample=%d)",
		len(sampled), len(in.Sprites), p.Sample)

	entries := decodeSprites(sampled, report)

	var shadows map[string]*image.NRGBA
	if p.UseShadowImages {
		var err error
		entries, shadows, err = resolveShadows(entries, in.Shadows, p.MissingShadowPolicy, report)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(entries) == 0 {
		return nil, nil, ErrNoSprites
	}

	key, useKey := p.RemoveColorKey()

	tiles := make([]*image.NRGBA, len(entries))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			img := e.img
			if useKey {
				sprite.RemoveColor(img, key)
			}
			if p.Outline > 0 {
				sprite.Outline(img, p.Outline, outlineColor)
			}
			if p.UseShadowImages {
				if sh := shadows[e.name]; sh != nil {
					img = sprite.ImageShadow(img, sh)
				}
			} else if p.ShadowScale > 0 {
				img = sprite.ScaleShadow(img, p.ShadowScale, shadowColor)
			}
			tiles[i] = sprite.FitTile(img, p.TileSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, &CompositionError{Err: err}
	}

	var background image.Image
	if p.UseBackground && in.Background != nil {
		img, err := decodeNRGBA(in.Background.Data)
		if err != nil {
			return nil, nil, &DecodeError{Name: in.Background.Name, Err: err}
		}
		background = img
	}

	canvas := Pack(tiles, p.Width, p.TileSize, background)
	glog.V(1).Infof("composed %dx%d atlas from %d tiles", canvas.Bounds().Dx(), canvas.Bounds().Dy(), len(tiles))
	return canvas, report, nil
}

type spriteEntry struct {
	name string
	img  *image.NRGBA
}

// sampleSprites keeps the sprites at 0-based indices 0, n, 2n, ... of
// the original input order. sample=1 is the identity filter.
func sampleSprites(sprites []NamedImage, sample int) []NamedImage {
	if sample <= 1 {
		return sprites
	}
	var kept []NamedImage
	for i, s := range sprites {
		if i%sample == 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

// decodeSprites decodes the sampled sprites in parallel and then walks
// the results in input order, dropping undecodable files and sprites
// that are pixel-identical to the immediately preceding kept sprite
// (repeated frames in an animation export). Both drops are recorded in
// the report.
func decodeSprites(sampled []NamedImage, report *Report) []spriteEntry {
	type result struct {
		img *image.NRGBA
		err error
	}
	results := make([]result, len(sampled))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range sampled {
		i, s := i, s
		g.Go(func() error {
			img, err := decodeNRGBA(s.Data)
			results[i] = result{img: img, err: err}
			return nil
		})
	}
	g.Wait()

	var entries []spriteEntry
	var prev *image.NRGBA
	for i, res := range results {
		name := sampled[i].Name
		if res.err != nil {
			glog.Errorf("sprite %q: %v", name, res.err)
			report.Ignored = append(report.Ignored, IgnoredSprite{Name: name, Reason: ReasonDecodeError})
			continue
		}
		if prev != nil && sameImage(prev, res.img) {
			report.Ignored = append(report.Ignored, IgnoredSprite{Name: name, Reason: ReasonDuplicate})
			continue
		}
		prev = res.img
		entries = append(entries, spriteEntry{name: name, img: res.img})
	}
	return entries
}

// resolveShadows runs the matcher over the surviving sprites, decodes
// each claimed shadow, and applies the missing-shadow policy to every
// sprite left without a usable shadow. A claimed shadow that fails to
// decode is excluded, and its sprite falls back to the same policy.
func resolveShadows(entries []spriteEntry, shadowFiles []NamedImage, policy MissingShadowPolicy, report *Report) ([]spriteEntry, map[string]*image.NRGBA, error) {
	spriteNames := make([]string, len(entries))
	for i, e := range entries {
		spriteNames[i] = e.name
	}
	shadowNames := make([]string, len(shadowFiles))
	shadowData := make(map[string][]byte, len(shadowFiles))
	for i, s := range shadowFiles {
		shadowNames[i] = s.Name
		shadowData[s.Name] = s.Data
	}

	res := match.Match(spriteNames, shadowNames)
	report.ShadowMissing = res.Missing
	for _, a := range res.Ambiguous {
		report.ShadowAmbiguous = append(report.ShadowAmbiguous, AmbiguousShadow{
			Sprite:     a.Sprite,
			Candidates: a.Candidates,
		})
	}
	ambiguous := make(map[string]bool, len(res.Ambiguous))
	for _, a := range res.Ambiguous {
		ambiguous[a.Sprite] = true
	}

	shadows := make(map[string]*image.NRGBA, len(res.Pairs))
	kept := entries[:0]
	for _, e := range entries {
		if shadowName, ok := res.Pairs[e.name]; ok {
			img, err := decodeNRGBA(shadowData[shadowName])
			if err == nil {
				shadows[e.name] = img
				kept = append(kept, e)
				continue
			}
			glog.Errorf("shadow %q for sprite %q: %v", shadowName, e.name, err)
		}
		reason := ReasonMissingShadow
		if ambiguous[e.name] {
			reason = ReasonAmbiguousShadow
		}
		switch policy {
		case SkipShadow:
			kept = append(kept, e)
		case IgnoreSprite:
			report.Ignored = append(report.Ignored, IgnoredSprite{Name: e.name, Reason: reason})
		case Fail:
			return nil, nil, &ShadowResolutionError{Sprite: e.name, Reason: reason}
		}
	}
	return kept, shadows, nil
}

func decodeNRGBA(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return sprite.ToNRGBA(img), nil
}

// sameImage reports whether two decoded sprites are pixel-identical.
func sameImage(a, b *image.NRGBA) bool {
	return a.Bounds() == b.Bounds() && bytes.Equal(a.Pix, b.Pix)
}
