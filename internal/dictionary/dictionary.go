// Package dictionary builds the immutable first-name/surname sets that
// anchor the name scanner, fuzzy matcher, and phonetic matcher. Entries
// are normalized (trim, lowercase, NFC) once at construction and never
// mutated afterward, so a single NameDictionary is safe to share across
// concurrently scanning workers.
package dictionary

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

const bloomFalsePositiveRate = 0.01

// NameDictionary holds the normalized first-name and surname sets used
// to anchor name-scanner candidates and seed the fuzzy/phonetic
// matchers.
type NameDictionary struct {
	firstNames map[string]struct{}
	surnames   map[string]struct{}

	// firstBloom and surnameBloom give a cheap pre-check before the
	// exact-match lookup, so scanners can reject the overwhelming
	// majority of non-name tokens without touching the map.
	firstBloom   *bloom.BloomFilter
	surnameBloom *bloom.BloomFilter
}

// Normalize applies the canonical NameDictionary normalization: trim
// surrounding whitespace, lowercase, then NFC-normalize. Callers use
// this identically when building the dictionary and when looking a
// candidate token up against it.
func Normalize(s string) string {
	trimmed := strings.TrimSpace(s)
	lower := lowerCaser.String(trimmed)
	return norm.NFC.String(lower)
}

// New builds a NameDictionary from raw first-name and surname lists.
// Entries are normalized and deduplicated; the result is immutable.
func New(firstNames, surnames []string) *NameDictionary {
	d := &NameDictionary{
		firstNames: make(map[string]struct{}, len(firstNames)),
		surnames:   make(map[string]struct{}, len(surnames)),
	}
	for _, n := range firstNames {
		normalized := Normalize(n)
		if normalized != "" {
			d.firstNames[normalized] = struct{}{}
		}
	}
	for _, n := range surnames {
		normalized := Normalize(n)
		if normalized != "" {
			d.surnames[normalized] = struct{}{}
		}
	}

	d.firstBloom = bloom.NewWithEstimates(uint(len(d.firstNames))+1, bloomFalsePositiveRate)
	for n := range d.firstNames {
		d.firstBloom.AddString(n)
	}
	d.surnameBloom = bloom.NewWithEstimates(uint(len(d.surnames))+1, bloomFalsePositiveRate)
	for n := range d.surnames {
		d.surnameBloom.AddString(n)
	}
	return d
}

// IsFirstName reports whether the normalized form of s is a known
// first name.
func (d *NameDictionary) IsFirstName(s string) bool {
	n := Normalize(s)
	if !d.firstBloom.TestString(n) {
		return false
	}
	_, ok := d.firstNames[n]
	return ok
}

// IsSurname reports whether the normalized form of s is a known
// surname.
func (d *NameDictionary) IsSurname(s string) bool {
	n := Normalize(s)
	if !d.surnameBloom.TestString(n) {
		return false
	}
	_, ok := d.surnames[n]
	return ok
}

// IsAnyName reports whether s is a known first name or surname.
func (d *NameDictionary) IsAnyName(s string) bool {
	return d.IsFirstName(s) || d.IsSurname(s)
}

// FirstNameCount and SurnameCount expose dictionary size for stats
// reporting.
func (d *NameDictionary) FirstNameCount() int { return len(d.firstNames) }
func (d *NameDictionary) SurnameCount() int   { return len(d.surnames) }

// AllFirstNames and AllSurnames return the normalized terms, used by
// the fuzzy and phonetic matchers to build their indexes. The returned
// slices are freshly allocated; mutating them does not affect the
// dictionary.
func (d *NameDictionary) AllFirstNames() []string {
	out := make([]string, 0, len(d.firstNames))
	for n := range d.firstNames {
		out = append(out, n)
	}
	return out
}

func (d *NameDictionary) AllSurnames() []string {
	out := make([]string, 0, len(d.surnames))
	for n := range d.surnames {
		out = append(out, n)
	}
	return out
}

// AllNames returns the union of first names and surnames, deduplicated.
func (d *NameDictionary) AllNames() []string {
	seen := make(map[string]struct{}, len(d.firstNames)+len(d.surnames))
	out := make([]string, 0, len(d.firstNames)+len(d.surnames))
	for n := range d.firstNames {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	for n := range d.surnames {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
