package watchlist

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads records from the consolidated list export format: rows of
// uid, primary name, and a free-form details column with pipe-separated
// clauses such as `Type: individual | Program: UKRAINE-EO13661 | Aliases:
// a.k.a. 'PUTIN, Vladimir'` plus OFAC-style remarks. The snapshot version
// is a content hash so reloads of identical data keep the same version.
func LoadCSV(path string) ([]*Record, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read watchlist file: %w", err)
	}
	sum := sha256.Sum256(raw)
	version := hex.EncodeToString(sum[:8])

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1

	var records []*Record
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("parse watchlist row %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "uid") {
			continue
		}
		if len(row) < 2 {
			continue
		}

		rec := &Record{
			ID:          strings.TrimSpace(row[0]),
			PrimaryName: strings.TrimSpace(row[1]),
			Type:        "individual",
		}
		if rec.ID == "" || rec.PrimaryName == "" {
			continue
		}
		if len(row) > 2 {
			applyDetails(rec, row[2])
		}
		records = append(records, rec)
	}
	return records, version, nil
}

// applyDetails parses the pipe-separated detail clauses and the embedded
// remarks conventions into structured fields.
func applyDetails(rec *Record, details string) {
	rec.Remarks = strings.TrimSpace(details)

	for _, clause := range strings.Split(details, "|") {
		clause = strings.TrimSpace(clause)
		key, value, found := strings.Cut(clause, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "type":
			if value != "" {
				rec.Type = strings.ToLower(value)
			}
		case "program":
			rec.Program = value
		case "aliases":
			rec.Aliases = append(rec.Aliases, ExtractAliases(value)...)
		case "address":
			if value != "" {
				rec.Addresses = append(rec.Addresses, value)
			}
		}
	}

	if dob := ExtractDOB(rec.Remarks); dob != "" {
		rec.DateOfBirth = ParseDate(dob)
	}
	if nat := ExtractNationality(rec.Remarks); nat != "" {
		rec.Nationalities = append(rec.Nationalities, nat)
	}
	if len(rec.Aliases) == 0 {
		rec.Aliases = ExtractAliases(rec.Remarks)
	}
}
