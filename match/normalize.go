// Package match pairs sprite images with their shadow images by
// filename. Matching works on canonicalized names so that naming
// variation between an artist's sprite export and the matching shadow
// export ("Cat Walk.png" vs "cat-walk_shadow.PNG") does not matter.
package match

import "strings"

// shadowSuffixes are the recognized trailing shadow markers, longest
// first so that "__shadow" is not half-consumed by "_shadow". The
// tokens are matched against already-normalized names; this is a fixed
// rule table, not a fuzzy matcher.
var shadowSuffixes = []string{
	"__shadow",
	"_shadow",
	"(shadow)",
	"shadow",
	"_shdw",
	"shdw",
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '_', '-', '.':
		return true
	}
	return false
}

// Normalize canonicalizes a filename for matching. The file extension
// is dropped, the rest is lowercased, and any run of spaces, tabs,
// dashes, underscores or dots collapses into a single underscore.
// Leading and trailing separators are dropped, which makes Normalize
// idempotent: applying it to its own output is a no-op.
func Normalize(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range name {
		if isSeparator(r) {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// StripShadowSuffix removes one recognized trailing shadow token from
// an already-normalized name, plus any separator left dangling before
// it. Names without a recognized token come back unchanged.
func StripShadowSuffix(name string) string {
	for _, suffix := range shadowSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimRight(name[:len(name)-len(suffix)], "_")
		}
	}
	return name
}
