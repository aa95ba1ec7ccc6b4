// Package textnorm reduces free text to comparable token sets.
// Tokens are lowercased, stripped of punctuation and stopwords, and
// lemmatized to a base form so that phrasing differences ("REST APIs"
// vs "RESTful API design") still produce overlapping tokens.
package textnorm

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:[+#]+)?`)

// Normalize lowercases text, tokenizes on word boundaries, removes
// stopwords and lemmatizes each surviving token. Pure and deterministic.
func Normalize(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, Lemmatize(tok))
	}
	return tokens
}

// TokenSet returns the normalized tokens of text as a set
func TokenSet(text string) map[string]struct{} {
	tokens := Normalize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// IsSubset reports whether every token of a is present in b
func IsSubset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for tok := range a {
		if _, ok := b[tok]; !ok {
			return false
		}
	}
	return true
}

// plural suffix rules, applied in order; first applicable rule wins
var pluralRules = []struct {
	suffix  string
	replace string
}{
	{"sses", "ss"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"xes", "x"},
	{"zes", "z"},
	{"ies", "y"},
	{"ves", "f"},
	{"men", "man"},
	{"s", ""},
}

// irregular forms that the suffix rules would mangle
var irregulars = map[string]string{
	"children": "child",
	"people":   "person",
	"data":     "data",
	"analyses": "analysis",
	"theses":   "thesis",
	"indices":  "index",
	"matrices": "matrix",
	"schemas":  "schema",
	"criteria": "criterion",
}

// Lemmatize maps a lowercase token to its singular base form.
// Only noun-style plural reduction is applied; verbs are left as-is,
// which keeps the transform conservative and reversible to inspect.
func Lemmatize(token string) string {
	if base, ok := irregulars[token]; ok {
		return base
	}

	for _, rule := range pluralRules {
		if !strings.HasSuffix(token, rule.suffix) {
			continue
		}
		base := token[:len(token)-len(rule.suffix)] + rule.replace
		// Short stems like "as" -> "a" or "is" -> "i" are noise
		if len(base) < 2 {
			return token
		}
		// Words ending in double-s ("express") are not plurals
		if rule.suffix == "s" && strings.HasSuffix(token, "ss") {
			return token
		}
		// "us" endings ("kubernetes" aside, "status", "nexus") are singular
		if rule.suffix == "s" && strings.HasSuffix(token, "us") {
			return token
		}
		return base
	}
	return token
}
