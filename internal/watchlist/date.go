package watchlist

import (
	"regexp"
	"strconv"
	"strings"
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var (
	dateISO    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dateNamed  = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})\.?\s+(\d{4})$`)
	dateYear   = regexp.MustCompile(`^(\d{4})$`)
	circaNoise = regexp.MustCompile(`(?i)^(circa|c\.|approx\.?|approximately)\s+`)
)

// ParseDate parses the flexible date formats that appear in queries and in
// sanctions source data: "1952", "1952-10-07", "07 Oct 1952". Anything
// ambiguous or unparseable yields the unknown date; a missing birth date
// must stay neutral downstream, never fail a screening.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	s = circaNoise.ReplaceAllString(s, "")
	if s == "" {
		return Date{}
	}

	if m := dateYear.FindStringSubmatch(s); m != nil {
		return Date{Year: atoi(m[1])}
	}
	if m := dateISO.FindStringSubmatch(s); m != nil {
		d := Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
		if validMonthDay(d) {
			return d
		}
		return Date{}
	}
	if m := dateNamed.FindStringSubmatch(s); m != nil {
		month, ok := months[strings.ToLower(m[2])[:3]]
		if !ok {
			return Date{}
		}
		d := Date{Year: atoi(m[3]), Month: month, Day: atoi(m[1])}
		if validMonthDay(d) {
			return d
		}
	}
	return Date{}
}

func validMonthDay(d Date) bool {
	return d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && d.Day <= 31
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
