package atlas

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoSprites is returned when sampling, decoding and the ignore
// policy leave nothing to pack.
var ErrNoSprites = errors.New("no sprites left to compose")

// ValidationError reports malformed or out-of-range parameters. It is
// raised before any image work begins.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DecodeError reports an input file that is not a decodable image. For
// sprites and shadows this is recovered locally; it only surfaces as an
// error for the background, where there is no fallback.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: not a decodable image: %v", e.Name, e.Err)
}

// ShadowResolutionError aborts a composition under the "fail" missing
// shadow policy. No partial atlas is returned alongside it.
type ShadowResolutionError struct {
	Sprite string
	Reason string
}

func (e *ShadowResolutionError) Error() string {
	return fmt.Sprintf("sprite %q: %s", e.Sprite, e.Reason)
}

// CompositionError wraps an unexpected internal failure during
// composition.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition failed: %v", e.Err)
}
