package screening

import (
	"regexp"
	"strings"

	"vigil/internal/names"
	"vigil/internal/watchlist"
)

var digits = regexp.MustCompile(`\d`)

// ParseQuery normalizes free-form query text into a Query. The free-form
// grammar follows the screening convention: comma-separated segments where
// the first is the name and later segments are recognized as a date of
// birth when they contain digits, otherwise as a nationality. Explicit
// hints always win over inferred segments.
//
// An unparseable DOB is left unknown rather than failing; downstream
// context scoring treats unknown as neutral. The only fatal condition is a
// name that normalizes to nothing: that returns ErrInvalidQuery.
func ParseQuery(req ScreenRequest) (Query, error) {
	segments := strings.Split(req.QueryText, ",")

	q := Query{RawText: req.QueryText}

	namePart := strings.TrimSpace(segments[0])
	q.NameTokens = fieldTokens(namePart)

	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if digits.MatchString(seg) {
			if q.DateOfBirth.IsZero() {
				q.DateOfBirth = watchlist.ParseDate(seg)
			}
		} else if q.Nationality == "" {
			q.Nationality = seg
		}
	}

	if req.DOBHint != "" {
		q.DateOfBirth = watchlist.ParseDate(req.DOBHint)
	}
	if req.NationalityHint != "" {
		q.Nationality = strings.TrimSpace(req.NationalityHint)
	}
	if req.AddressHint != "" {
		q.Address = strings.TrimSpace(req.AddressHint)
	}

	if len(q.NameTokens) == 0 {
		return Query{}, ErrInvalidQuery
	}
	return q, nil
}

// fieldTokens splits the name part on whitespace after dropping punctuation,
// preserving original casing for display. Matching normalizes separately.
func fieldTokens(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '\'', '"', '(', ')':
			return ' '
		}
		return r
	}, s)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		// drop tokens that normalize away entirely (bare punctuation or
		// courtesy affixes)
		if len(names.Tokens(f)) == 0 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
