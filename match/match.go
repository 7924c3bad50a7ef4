package match

import "sort"

// Ambiguity records a sprite whose normalized name matched more than
// one shadow candidate. No pair is committed for such a sprite; the
// caller decides what to do with it.
type Ambiguity struct {
	Sprite     string
	Candidates []string
}

// Result is the outcome of pairing a sprite list against a shadow pool.
type Result struct {
	// Pairs maps a sprite filename to the single shadow filename it
	// claimed.
	Pairs map[string]string
	// Missing lists sprites with no shadow candidate, in sprite input
	// order.
	Missing []string
	// Ambiguous lists sprites with more than one candidate, in sprite
	// input order. Candidate lists are sorted.
	Ambiguous []Ambiguity
}

// Match pairs every sprite with at most one shadow. Shadow names are
// normalized and suffix-stripped once into a pool keyed by canonical
// name; each sprite then costs a single lookup, so the whole run is
// O(sprites + shadows).
//
// A shadow claimed by an exact single-candidate match is consumed: it
// is removed from the pool and cannot appear in a later sprite's
// candidate list. Sprites are processed in input order, which keeps
// consumption deterministic. Shuffling the shadow list never changes
// which sprites end up matched, missing or ambiguous.
func Match(spriteNames, shadowNames []string) Result {
	pool := make(map[string][]string, len(shadowNames))
	for _, shadow := range shadowNames {
		key := StripShadowSuffix(Normalize(shadow))
		pool[key] = append(pool[key], shadow)
	}

	res := Result{Pairs: make(map[string]string, len(spriteNames))}
	for _, sprite := range spriteNames {
		candidates := pool[Normalize(sprite)]
		switch len(candidates) {
		case 0:
			res.Missing = append(res.Missing, sprite)
		case 1:
			res.Pairs[sprite] = candidates[0]
			delete(pool, Normalize(sprite))
		default:
			sorted := append([]string(nil), candidates...)
			sort.Strings(sorted)
			res.Ambiguous = append(res.Ambiguous, Ambiguity{
				Sprite:     sprite,
				Candidates: sorted,
			})
		}
	}
	return res
}
