// Package phonetic implements the Double-Metaphone matcher: every
// dictionary term is indexed by its primary and alternate
// Double-Metaphone codes, and a query is matched exactly, then by
// primary code, then alternate code, then a length-bucketed
// Levenshtein scan for short queries.
package phonetic

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"phi-redactor/internal/validate"
)

// MatchType labels how a Match result was obtained.
type MatchType string

const (
	Exact           MatchType = "EXACT"
	Primary         MatchType = "PRIMARY"
	Alternate       MatchType = "ALTERNATE"
	LevenshteinScan MatchType = "LEVENSHTEIN"
)

// Result is the outcome of a successful Match.
type Result struct {
	Term       string
	Type       MatchType
	Confidence float64
}

// Matcher indexes a fixed term list by Double-Metaphone code. Built
// once and read-only thereafter.
type Matcher struct {
	exact     map[string]struct{}
	byPrimary map[string][]string
	byAlt     map[string][]string
	terms     []string
}

// New builds a Matcher over terms (already dictionary-normalized).
func New(terms []string) *Matcher {
	m := &Matcher{
		exact:     make(map[string]struct{}, len(terms)),
		byPrimary: make(map[string][]string),
		byAlt:     make(map[string][]string),
		terms:     make([]string, 0, len(terms)),
	}
	for _, raw := range terms {
		t := strings.ToLower(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		m.exact[t] = struct{}{}
		m.terms = append(m.terms, t)
		primary, alt := matchr.DoubleMetaphone(t)
		m.byPrimary[primary] = append(m.byPrimary[primary], t)
		if alt != "" && alt != primary {
			m.byAlt[alt] = append(m.byAlt[alt], t)
		}
	}
	return m
}

// normalizeQuery lowercases, inverts OCR digit substitution back to
// letters, and collapses internal whitespace.
func normalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = validate.NormalizeOCRLetters(q)
	return strings.Join(strings.Fields(q), " ")
}

// Match finds the closest dictionary term to q by the cascade
// documented for the phonetic matcher: exact, primary-code bucket,
// alternate-code bucket, then (for short queries) a length-bucketed
// Levenshtein scan.
func (m *Matcher) Match(q string) (Result, bool) {
	norm := normalizeQuery(q)
	if norm == "" {
		return Result{}, false
	}
	if _, ok := m.exact[norm]; ok {
		return Result{Term: norm, Type: Exact, Confidence: 1.0}, true
	}

	primary, alt := matchr.DoubleMetaphone(norm)

	if term, ok := closestByLevenshtein(norm, m.byPrimary[primary], 2); ok {
		return Result{Term: term, Type: Primary, Confidence: 0.9}, true
	}
	if alt != "" {
		if term, ok := closestByLevenshtein(norm, m.byAlt[alt], 2); ok {
			return Result{Term: term, Type: Alternate, Confidence: 0.85}, true
		}
	}

	if len(norm) <= 6 {
		var bucket []string
		for _, t := range m.terms {
			if abs(len(t)-len(norm)) <= 2 {
				bucket = append(bucket, t)
			}
		}
		if term, ok := closestByLevenshtein(norm, bucket, 2); ok {
			return Result{Term: term, Type: LevenshteinScan, Confidence: 0.75}, true
		}
	}

	return Result{}, false
}

func closestByLevenshtein(q string, candidates []string, maxDist int) (string, bool) {
	best := ""
	bestDist := maxDist + 1
	for _, c := range candidates {
		if abs(len(c)-len(q)) > maxDist {
			continue
		}
		d := levenshtein.ComputeDistance(q, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best == "" || bestDist > maxDist {
		return "", false
	}
	return best, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
