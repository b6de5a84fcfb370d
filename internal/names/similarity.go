package names

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Ratio is the normalized Levenshtein similarity between two strings:
// 1 - distance/max(len). Inputs are compared as given; callers normalize
// first. Both empty compares as 1.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// TokenSortRatio compares the two strings with their word tokens sorted, so
// "putin vladimir" and "vladimir putin" score 1.0. This is the word-order
// tolerant half of the fuzzy strategy.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// TokenSetRatio compares the shared word tokens of two strings against each
// full token set. A name whose tokens are a subset of the other's scores 1.0
// ("vladimir putin" against "vladimir vladimirovich putin"); disjoint token
// sets fall back to the sorted-token ratio.
func TokenSetRatio(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)

	inB := make(map[string]struct{}, len(tb))
	for _, tok := range tb {
		inB[tok] = struct{}{}
	}
	shared := make([]string, 0, len(ta))
	for _, tok := range ta {
		if _, ok := inB[tok]; ok {
			shared = append(shared, tok)
		}
	}

	sa, sb := sortTokens(a), sortTokens(b)
	best := Ratio(sa, sb)
	if len(shared) == 0 {
		return best
	}

	sort.Strings(shared)
	inter := strings.Join(shared, " ")
	if r := Ratio(inter, sa); r > best {
		best = r
	}
	if r := Ratio(inter, sb); r > best {
		best = r
	}
	return best
}

// PartialRatio is the best Ratio between the shorter string and any
// equal-length substring of the longer one, catching a name embedded in a
// longer form. Empty input scores 0.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	short := string(ra)
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		if r := Ratio(short, string(rb[i:i+len(ra)])); r > best {
			best = r
		}
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
