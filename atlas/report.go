package atlas

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

// Reasons recorded in Report.Ignored.
const (
	ReasonDecodeError     = "decode error"
	ReasonDuplicate       = "duplicate"
	ReasonMissingShadow   = "missing shadow"
	ReasonAmbiguousShadow = "ambiguous shadow"
)

// IgnoredSprite names a sprite that was dropped after sampling, and
// why. Sprites removed by the sample filter itself are not reported.
type IgnoredSprite struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// AmbiguousShadow records a sprite whose name matched several shadow
// candidates, none of which was committed.
type AmbiguousShadow struct {
	Sprite     string   `json:"sprite"`
	Candidates []string `json:"candidates"`
}

// Report carries the diagnostics of one composition. Entries within
// each list follow input processing order.
type Report struct {
	Ignored         []IgnoredSprite   `json:"ignored"`
	ShadowMissing   []string          `json:"shadowMissing"`
	ShadowAmbiguous []AmbiguousShadow `json:"shadowAmbiguous"`
}

// EncodeHeader serializes the report for the X-Atlas-Report response
// header: base64 of the JSON encoding, with nil lists written as empty
// arrays so clients always see the same shape.
func (r *Report) EncodeHeader() (string, error) {
	enc := *r
	if enc.Ignored == nil {
		enc.Ignored = []IgnoredSprite{}
	}
	if enc.ShadowMissing == nil {
		enc.ShadowMissing = []string{}
	}
	if enc.ShadowAmbiguous == nil {
		enc.ShadowAmbiguous = []AmbiguousShadow{}
	}
	data, err := json.Marshal(&enc)
	if err != nil {
		return "", errors.Wrap(err, "encoding atlas report")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeReportHeader reverses EncodeHeader. Clients of the HTTP API use
// this to read the diagnostic channel; it is also handy in tests.
func DecodeReportHeader(header string) (*Report, error) {
	data, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, errors.Wrap(err, "decoding atlas report header")
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "unmarshaling atlas report")
	}
	return &r, nil
}
