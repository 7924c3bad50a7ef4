package atlas

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// MissingShadowPolicy selects what happens to a sprite without a
// committed shadow match when shadow images are in use.
type MissingShadowPolicy string

const (
	// SkipShadow draws the sprite with no shadow.
	SkipShadow MissingShadowPolicy = "skipShadow"
	// IgnoreSprite drops the sprite from packing and records it in the
	// report.
	IgnoreSprite MissingShadowPolicy = "ignoreSprite"
	// Fail aborts the whole composition.
	Fail MissingShadowPolicy = "fail"
)

// Params configures one composition. The JSON tags are the wire names
// used by the upload form's params field.
type Params struct {
	TileSize            int                 `json:"tileSize"`
	Width               int                 `json:"width"`
	Sample              int                 `json:"sample"`
	Outline             int                 `json:"outline"`
	RemoveColor         string              `json:"removeColor,omitempty"`
	ShadowScale         float64             `json:"shadowScale"`
	UseShadowImages     bool                `json:"useShadowImages"`
	MissingShadowPolicy MissingShadowPolicy `json:"missingShadowPolicy"`
	UseBackground       bool                `json:"useBackground"`
	PreviewMaxWidth     int                 `json:"previewMaxWidth"`
}

// DefaultParams returns the service defaults: a 52px tile, 6 columns,
// every sprite kept, no effects, preview capped at 1024px.
func DefaultParams() Params {
	return Params{
		TileSize:            52,
		Width:               6,
		Sample:              1,
		MissingShadowPolicy: SkipShadow,
		PreviewMaxWidth:     1024,
	}
}

// ParseParams decodes the JSON parameter payload on top of the
// defaults and validates the result.
func ParseParams(data []byte) (Params, error) {
	p := DefaultParams()
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, &ValidationError{Msg: "invalid JSON in params: " + err.Error()}
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks all range constraints. The maxima bound the work a
// single request can demand.
func (p *Params) Validate() error {
	if p.TileSize < 1 || p.TileSize > 512 {
		return &ValidationError{Msg: "tileSize must be between 1 and 512"}
	}
	if p.Width < 1 || p.Width > 20 {
		return &ValidationError{Msg: "width must be between 1 and 20"}
	}
	if p.Sample < 1 {
		return &ValidationError{Msg: "sample must be positive"}
	}
	if p.Outline < 0 || p.Outline > 50 {
		return &ValidationError{Msg: "outline must be between 0 and 50"}
	}
	if p.ShadowScale < 0 || p.ShadowScale > 5 {
		return &ValidationError{Msg: "shadowScale must be between 0 and 5"}
	}
	switch p.MissingShadowPolicy {
	case SkipShadow, IgnoreSprite, Fail:
	default:
		return &ValidationError{Msg: fmt.Sprintf("invalid missingShadowPolicy %q", p.MissingShadowPolicy)}
	}
	if p.PreviewMaxWidth < 0 {
		return &ValidationError{Msg: "previewMaxWidth must not be negative"}
	}
	if p.RemoveColor != "" {
		if _, err := parseHexColor(p.RemoveColor); err != nil {
			return &ValidationError{Msg: "removeColor: " + err.Error()}
		}
	}
	return nil
}

// RemoveColorKey returns the parsed chroma key and whether one is set.
// Validate must have passed.
func (p *Params) RemoveColorKey() (color.NRGBA, bool) {
	if p.RemoveColor == "" {
		return color.NRGBA{}, false
	}
	c, err := parseHexColor(p.RemoveColor)
	if err != nil {
		return color.NRGBA{}, false
	}
	return c, true
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("want #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("want #rrggbb, got %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
