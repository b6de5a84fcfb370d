// Package watchlist holds the read-only sanctions record model and the
// stores that serve candidate lookups. Records are produced out-of-band by
// the ingestion pipeline; the engine never mutates them.
package watchlist

import (
	"fmt"
	"regexp"
	"strings"
)

// Date is a possibly-partial calendar date. Sanctions source data frequently
// carries year-only birth dates, so zero Month/Day means unknown, and a zero
// Year means the whole date is unknown.
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether the date is entirely unknown.
func (d Date) IsZero() bool { return d.Year == 0 }

// Complete reports whether year, month, and day are all present.
func (d Date) Complete() bool { return d.Year != 0 && d.Month != 0 && d.Day != 0 }

func (d Date) String() string {
	switch {
	case d.IsZero():
		return ""
	case !d.Complete():
		return fmt.Sprintf("%04d", d.Year)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// Record is one sanctions watchlist entry. The engine treats it read-only.
type Record struct {
	ID            string
	PrimaryName   string
	Type          string // "individual" or "entity"
	Program       string
	Aliases       []string
	DateOfBirth   Date
	Nationalities []string
	Addresses     []string
	Remarks       string
}

// Names returns the primary name followed by all aliases.
func (r *Record) Names() []string {
	out := make([]string, 0, 1+len(r.Aliases))
	out = append(out, r.PrimaryName)
	out = append(out, r.Aliases...)
	return out
}

// Stats summarizes the loaded list for the health and stats endpoints.
type Stats struct {
	TotalRecords int
	Individuals  int
	Entities     int
	Programs     int
}

// Source remarks follow the OFAC convention: semicolon-separated clauses
// like `DOB 07 Oct 1952; nationality Russia; a.k.a. 'PUTIN, Vladimir'`.
var (
	remarkDOB         = regexp.MustCompile(`(?i)DOB\s+([^;]+)`)
	remarkNationality = regexp.MustCompile(`(?i)nationality\s+([^;]+)`)
	remarkAKA         = regexp.MustCompile(`(?i)a\.k\.a\.\s+'([^']+)'`)
	remarkAlt         = regexp.MustCompile(`(?i)alt\.\s+([^;]+)`)
)

// ExtractDOB pulls a DOB clause out of free-form remarks, if present.
func ExtractDOB(remarks string) string {
	if m := remarkDOB.FindStringSubmatch(remarks); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractNationality pulls a nationality clause out of free-form remarks.
func ExtractNationality(remarks string) string {
	if m := remarkNationality.FindStringSubmatch(remarks); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractAliases pulls a.k.a. and alt. names out of free-form remarks.
func ExtractAliases(remarks string) []string {
	var aliases []string
	for _, m := range remarkAKA.FindAllStringSubmatch(remarks, -1) {
		aliases = append(aliases, strings.TrimSpace(m[1]))
	}
	for _, m := range remarkAlt.FindAllStringSubmatch(remarks, -1) {
		aliases = append(aliases, strings.TrimSpace(m[1]))
	}
	return aliases
}
