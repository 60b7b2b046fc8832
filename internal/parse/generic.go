package parse

import "regexp"

// KeepPolicy decides which end of the token stream survives when a text
// yields more 2-digit tokens than the game's prize count. Trailing numbers
// are usually the actual results (leading ones tend to be draw/sequence
// identifiers), but the heuristic has flipped before, so it stays
// configurable per game.
type KeepPolicy string

const (
	KeepLast  KeepPolicy = "last"
	KeepFirst KeepPolicy = "first"
)

// NoiseFilterMode controls the 20/25/26 calendar-noise filter. Those values
// are legitimate draw results most of the time, so the filter only fires in
// contextual mode, and only when the token sits next to date punctuation.
type NoiseFilterMode string

const (
	NoiseFilterOff        NoiseFilterMode = "off"
	NoiseFilterContextual NoiseFilterMode = "contextual"
)

// GenericOptions configures the generic strategy for one game.
type GenericOptions struct {
	Keep        KeepPolicy
	NoiseFilter NoiseFilterMode
}

// calendarNoise holds 2-digit values that commonly leak out of partially
// scrubbed year fragments (20 26, 25 ...).
var calendarNoise = map[string]bool{"20": true, "25": true, "26": true}

var reStandalone2 = regexp.MustCompile(`\b\d{2}\b`)

// ExtractGeneric pulls standalone 2-digit tokens (not adjacent to other
// digits) out of already-cleaned text. When more than limit are found, the
// keep policy selects which end survives; order is positional and
// dedup-unaware.
func ExtractGeneric(cleaned string, limit int, opts GenericOptions) []string {
	if opts.Keep == "" {
		opts.Keep = KeepLast
	}

	var tokens []string
	for _, loc := range reStandalone2.FindAllStringIndex(cleaned, -1) {
		tok := cleaned[loc[0]:loc[1]]
		if opts.NoiseFilter == NoiseFilterContextual && isYearFragment(cleaned, loc[0], loc[1], tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	if limit > 0 && len(tokens) > limit {
		if opts.Keep == KeepFirst {
			return tokens[:limit]
		}
		return tokens[len(tokens)-limit:]
	}
	return tokens
}

// isYearFragment reports whether a calendar-noise token sits in date-like
// context: a separator character within the two characters on either side.
// Anything less conclusive is treated as a real result.
func isYearFragment(s string, start, end int, tok string) bool {
	if !calendarNoise[tok] {
		return false
	}
	lo := start - 2
	if lo < 0 {
		lo = 0
	}
	hi := end + 2
	if hi > len(s) {
		hi = len(s)
	}
	for _, c := range s[lo:start] {
		if c == '-' || c == '/' {
			return true
		}
	}
	for _, c := range s[end:hi] {
		if c == '-' || c == '/' {
			return true
		}
	}
	return false
}
