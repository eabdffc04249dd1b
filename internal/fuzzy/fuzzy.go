// Package fuzzy implements a SymSpell-style deletion-neighborhood
// index over a name dictionary: precompute every term's deletion
// neighborhood up to a maximum edit distance, then look up a query by
// generating its own deletion neighborhood and verifying candidates
// with a bounded edit-distance check.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"
)

// MatchType labels how a Lookup result was obtained.
type MatchType string

const (
	Exact    MatchType = "EXACT"
	Delete   MatchType = "DELETE"
	Phonetic MatchType = "PHONETIC"
)

// Result is the outcome of a successful Lookup.
type Result struct {
	Term       string
	Distance   int
	Type       MatchType
	Confidence float64
}

type deletionEntry struct {
	term     string
	distance int
}

// Matcher is an immutable SymSpell index over a fixed term list, built
// once at construction. Lookup results are cached in a bounded LRU.
type Matcher struct {
	maxDistance int
	minLength   int

	exact     map[string]struct{}
	deletions map[string][]deletionEntry
	soundex   map[string][]string

	cache *lru.Cache[string, Result]
}

// Config tunes the matcher's precomputation and cache behavior.
type Config struct {
	MaxEditDistance int
	MinTermLength   int
	CacheSize       int
}

// DefaultConfig mirrors the documented defaults: distance 2, min
// length 3, 10000-entry cache.
func DefaultConfig() Config {
	return Config{MaxEditDistance: 2, MinTermLength: 3, CacheSize: 10000}
}

// New builds a Matcher over terms using cfg. Terms shorter than
// cfg.MinTermLength are still inserted into the exact-match set but do
// not contribute to the deletion index.
func New(terms []string, cfg Config) *Matcher {
	if cfg.MaxEditDistance <= 0 {
		cfg.MaxEditDistance = 2
	}
	if cfg.MinTermLength <= 0 {
		cfg.MinTermLength = 3
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 10000
	}

	m := &Matcher{
		maxDistance: cfg.MaxEditDistance,
		minLength:   cfg.MinTermLength,
		exact:       make(map[string]struct{}, len(terms)),
		deletions:   make(map[string][]deletionEntry),
		soundex:     make(map[string][]string),
	}
	cache, _ := lru.New[string, Result](cfg.CacheSize)
	m.cache = cache

	for _, raw := range terms {
		t := strings.ToLower(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		m.exact[t] = struct{}{}
		if len(t) < m.minLength {
			continue
		}
		for variant, dist := range deletionNeighborhood(t, m.maxDistance, m.minLength) {
			m.deletions[variant] = append(m.deletions[variant], deletionEntry{term: t, distance: dist})
		}
		code := soundex(t)
		m.soundex[code] = append(m.soundex[code], t)
	}

	return m
}

// Lookup normalizes q and returns the best match within the
// configured edit distance, or ok=false if none qualifies. Results are
// cached keyed by the normalized query.
func (m *Matcher) Lookup(q string) (Result, bool) {
	norm := strings.ToLower(strings.TrimSpace(q))
	if norm == "" {
		return Result{}, false
	}
	if cached, ok := m.cache.Get(norm); ok {
		return cached, cached.Term != ""
	}

	result, ok := m.lookupUncached(norm)
	if ok {
		m.cache.Add(norm, result)
	} else {
		m.cache.Add(norm, Result{})
	}
	return result, ok
}

func (m *Matcher) lookupUncached(norm string) (Result, bool) {
	if _, ok := m.exact[norm]; ok {
		return Result{Term: norm, Distance: 0, Type: Exact, Confidence: 1.0}, true
	}

	candidates := make(map[string]struct{})
	if entries, ok := m.deletions[norm]; ok {
		for _, e := range entries {
			candidates[e.term] = struct{}{}
		}
	}
	for variant := range deletionNeighborhood(norm, m.maxDistance, 0) {
		if _, ok := m.exact[variant]; ok {
			candidates[variant] = struct{}{}
		}
		if entries, ok := m.deletions[variant]; ok {
			for _, e := range entries {
				candidates[e.term] = struct{}{}
			}
		}
	}

	best := ""
	bestDist := m.maxDistance + 1
	for cand := range candidates {
		d := levenshtein.ComputeDistance(norm, cand)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	if best != "" && bestDist <= m.maxDistance {
		conf := confidenceFor(norm, best, bestDist)
		return Result{Term: best, Distance: bestDist, Type: Delete, Confidence: conf}, true
	}

	code := soundex(norm)
	bestPhonetic := ""
	bestPhoneticDist := m.maxDistance + 2
	for _, cand := range m.soundex[code] {
		d := levenshtein.ComputeDistance(norm, cand)
		if d < bestPhoneticDist {
			bestPhoneticDist = d
			bestPhonetic = cand
		}
	}
	if bestPhonetic != "" && bestPhoneticDist <= m.maxDistance+1 {
		conf := confidenceFor(norm, bestPhonetic, bestPhoneticDist) * 0.9
		return Result{Term: bestPhonetic, Distance: bestPhoneticDist, Type: Phonetic, Confidence: conf}, true
	}

	return Result{}, false
}

// confidenceFor combines a length-normalized similarity score with a
// shared-prefix bonus and a distance penalty, as documented for the
// SymSpell lookup.
func confidenceFor(a, b string, dist int) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	similarity := 1 - float64(dist)/float64(maxLen)
	prefixBonus := 0.0
	prefixLen := commonPrefixLen(a, b)
	if prefixLen > 0 {
		prefixBonus = 0.1 * float64(min(prefixLen, 4)) / 4
	}
	penalty := pow(0.92, dist)
	conf := similarity*penalty + prefixBonus
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// deletionNeighborhood returns every string obtainable from t by
// deleting up to maxDist characters, mapped to the deletion distance
// that produced it. Results shorter than minLen are dropped.
func deletionNeighborhood(t string, maxDist, minLen int) map[string]int {
	result := map[string]int{t: 0}
	frontier := []string{t}
	for d := 1; d <= maxDist; d++ {
		next := []string{}
		for _, s := range frontier {
			for i := 0; i < len(s); i++ {
				variant := s[:i] + s[i+1:]
				if len(variant) < minLen {
					continue
				}
				if _, seen := result[variant]; !seen {
					result[variant] = d
					next = append(next, variant)
				}
			}
		}
		frontier = next
	}
	return result
}

// soundex computes the classic Soundex code of s, used as the
// matcher's secondary phonetic index.
func soundex(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "0000"
	}
	code := map[byte]byte{
		'B': '1', 'F': '1', 'P': '1', 'V': '1',
		'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
		'D': '3', 'T': '3',
		'L': '4',
		'M': '5', 'N': '5',
		'R': '6',
	}
	var b strings.Builder
	b.WriteByte(s[0])
	last := code[s[0]]
	for i := 1; i < len(s) && b.Len() < 4; i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		digit, ok := code[c]
		if !ok {
			last = 0
			continue
		}
		if digit != last {
			b.WriteByte(digit)
		}
		last = digit
	}
	for b.Len() < 4 {
		b.WriteByte('0')
	}
	return b.String()
}
