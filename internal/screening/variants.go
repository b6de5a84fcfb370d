package screening

import (
	"strings"

	"vigil/internal/names"
)

// variantRule derives one probe string from the query's name tokens; an
// empty result means the rule does not apply. The rule set is closed and
// enumerable so coverage stays auditable and each rule independently
// testable.
type variantRule struct {
	tag    VariantRule
	derive func(tokens []string) string
}

var variantRules = []variantRule{
	{RuleAsIs, func(t []string) string {
		return strings.Join(t, " ")
	}},
	{RuleCaseFolded, func(t []string) string {
		return strings.ToLower(strings.Join(t, " "))
	}},
	{RuleSurnameFirst, func(t []string) string {
		if len(t) < 2 {
			return ""
		}
		last := t[len(t)-1]
		return last + " " + strings.Join(t[:len(t)-1], " ")
	}},
	{RuleNoMiddle, func(t []string) string {
		if len(t) < 3 {
			return ""
		}
		return t[0] + " " + t[len(t)-1]
	}},
	{RuleInitialsSurname, func(t []string) string {
		if len(t) < 2 {
			return ""
		}
		parts := make([]string, 0, len(t))
		for _, tok := range t[:len(t)-1] {
			parts = append(parts, tok[:1])
		}
		parts = append(parts, t[len(t)-1])
		return strings.Join(parts, " ")
	}},
	{RuleInitials, func(t []string) string {
		if len(t) < 2 {
			return ""
		}
		return names.Initials(strings.Join(t, " "))
	}},
}

// GenerateVariants deterministically derives the bounded probe set for a
// query. Duplicates (after matching normalization) keep the first rule that
// produced them; the count is capped at max.
func GenerateVariants(q Query, max int) []NameVariant {
	seen := make(map[string]struct{}, len(variantRules))
	variants := make([]NameVariant, 0, len(variantRules))

	for _, rule := range variantRules {
		if len(variants) >= max {
			break
		}
		text := rule.derive(q.NameTokens)
		if text == "" {
			continue
		}
		norm := names.Normalize(text)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		variants = append(variants, NameVariant{Text: text, Rule: rule.tag})
	}
	return variants
}

// probeStrings returns the raw variant texts for store lookups.
func probeStrings(variants []NameVariant) []string {
	out := make([]string, len(variants))
	for i, v := range variants {
		out[i] = v.Text
	}
	return out
}

// phoneticProbes returns the deduplicated phonetic keys of the variants.
func phoneticProbes(variants []NameVariant) []string {
	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		key := names.PhoneticKey(v.Text)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
