// Package names provides the name comparison primitives shared by the
// watchlist indexes and the screening matcher: normalization, phonetic
// encoding, and similarity ratios.
package names

import "strings"

// Common courtesy and generational affixes that carry no identity signal.
var affixes = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sir": {},
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {},
}

// Normalize lowercases, strips punctuation and courtesy affixes, and
// collapses whitespace. All matching and indexing goes through this one
// function so the EXACT equality rule is identical everywhere.
func Normalize(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Tokens returns the normalized word tokens of a name, in order.
func Tokens(s string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '-', r == '.', r == ',', r == '\'':
			b.WriteRune(' ')
		}
		// anything else (quotes, parens, diacritic leftovers) is dropped
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := affixes[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Initials returns the concatenated first letters of the normalized tokens.
func Initials(s string) string {
	var b strings.Builder
	for _, tok := range Tokens(s) {
		b.WriteByte(tok[0])
	}
	return b.String()
}
