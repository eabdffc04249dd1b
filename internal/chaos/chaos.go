// Package chaos implements the OCR-quality heuristic: four bounded
// sub-indicators plus normalized Shannon entropy combine into a
// composite chaos score, a sigmoid-derived recommended confidence
// threshold, and a quality tier used to adapt downstream scanning.
package chaos

import (
	"math"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Tier is the closed set of document quality tiers.
type Tier string

const (
	Clean    Tier = "CLEAN"
	Noisy    Tier = "NOISY"
	Degraded Tier = "DEGRADED"
	Chaotic  Tier = "CHAOTIC"
)

// Analysis is the result of analyzing a document's text for OCR noise.
type Analysis struct {
	Score              float64
	DigitSubstitution  float64
	CaseChaos          float64
	SpacingAnomalies   float64
	CharCorruption     float64
	Entropy            float64
	RecommendedThreshold float64
	EnableLabelBoost   bool
	Tier               Tier
}

const cachePrefixLen = 500

// Analyzer computes and caches ChaosAnalysis results, keyed by the
// first 500 characters of the analyzed text.
type Analyzer struct {
	cache *lru.Cache[string, Analysis]
}

// New returns an Analyzer whose cache holds up to capacity entries
// (spec default: 100).
func New(capacity int) *Analyzer {
	if capacity <= 0 {
		capacity = 100
	}
	c, _ := lru.New[string, Analysis](capacity)
	return &Analyzer{cache: c}
}

// Analyze returns the cached or freshly computed Analysis for text.
func (a *Analyzer) Analyze(text string) Analysis {
	key := cacheKey(text)
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}
	result := compute(text)
	a.cache.Add(key, result)
	return result
}

// Clear empties the analyzer's cache. Tests that depend on cache
// behavior call this in setup.
func (a *Analyzer) Clear() {
	a.cache.Purge()
}

func cacheKey(text string) string {
	runes := []rune(text)
	if len(runes) > cachePrefixLen {
		runes = runes[:cachePrefixLen]
	}
	return string(runes)
}

func compute(text string) Analysis {
	if text == "" {
		return Analysis{Tier: Clean, RecommendedThreshold: recommendedThreshold(0)}
	}

	digitSub := digitSubstitutionScore(text)
	caseChaos := caseChaosScore(text)
	spacing := spacingAnomalyScore(text)
	corruption := charCorruptionScore(text)
	entropy := normalizedEntropy(text)

	score := clamp01(0.30*digitSub + 0.25*caseChaos + 0.20*spacing + 0.15*corruption + 0.10*entropy)
	threshold := recommendedThreshold(score)

	return Analysis{
		Score:                score,
		DigitSubstitution:    digitSub,
		CaseChaos:            caseChaos,
		SpacingAnomalies:     spacing,
		CharCorruption:       corruption,
		Entropy:              entropy,
		RecommendedThreshold: threshold,
		EnableLabelBoost:     score > 0.3,
		Tier:                 tierFor(score),
	}
}

func tierFor(score float64) Tier {
	switch {
	case score < 0.15:
		return Clean
	case score < 0.35:
		return Noisy
	case score < 0.60:
		return Degraded
	default:
		return Chaotic
	}
}

func recommendedThreshold(score float64) float64 {
	t := 0.85 - 0.30*sigmoid(8*(score-0.35))
	return math.Round(t*100) / 100
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// digitSubstitutionScore counts "letter digit letter" triples where
// the digit is one of the OCR-confusable digits, normalized by the
// longer of text_len/10 or 100, doubled and clipped.
func digitSubstitutionScore(text string) float64 {
	confusable := map[rune]struct{}{'0': {}, '1': {}, '3': {}, '4': {}, '5': {}, '6': {}, '8': {}}
	runes := []rune(text)
	count := 0
	for i := 1; i+1 < len(runes); i++ {
		if unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1]) {
			if _, ok := confusable[runes[i]]; ok {
				count++
			}
		}
	}
	denom := math.Max(float64(len(runes))/10, 100)
	return clamp01(2 * float64(count) / denom)
}

// caseChaosScore is the fraction of length->=3 words that are neither
// all-upper, all-lower, proper-case, nor camelCase, times 3, clipped.
func caseChaosScore(text string) float64 {
	words := strings.Fields(text)
	var eligible, chaotic int
	for _, w := range words {
		letters := []rune(stripNonLetters(w))
		if len(letters) < 3 {
			continue
		}
		eligible++
		if !isRecognizedCasePattern(letters) {
			chaotic++
		}
	}
	if eligible == 0 {
		return 0
	}
	return clamp01(3 * float64(chaotic) / float64(eligible))
}

func stripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isRecognizedCasePattern(letters []rune) bool {
	allUpper, allLower := true, true
	for _, r := range letters {
		if unicode.IsUpper(r) {
			allLower = false
		}
		if unicode.IsLower(r) {
			allUpper = false
		}
	}
	if allUpper || allLower {
		return true
	}
	// Proper case: single leading uppercase, rest lowercase.
	if unicode.IsUpper(letters[0]) {
		rest := letters[1:]
		allRestLower := true
		for _, r := range rest {
			if !unicode.IsLower(r) {
				allRestLower = false
				break
			}
		}
		if allRestLower {
			return true
		}
	}
	// camelCase: leading lowercase, at least one interior uppercase,
	// never two uppercase letters in a row, and a lowercase last letter.
	if unicode.IsLower(letters[0]) {
		sawUpper := false
		prevUpper := false
		for _, r := range letters[1:] {
			if unicode.IsUpper(r) {
				sawUpper = true
				if prevUpper {
					return false
				}
				prevUpper = true
			} else {
				prevUpper = false
			}
		}
		return sawUpper && !prevUpper
	}
	return false
}

// spacingAnomalyScore counts runs of >=3 consecutive whitespace,
// space-before-punctuation, and "letter space letter letter"
// sequences, normalized by text length.
func spacingAnomalyScore(text string) float64 {
	runes := []rune(text)
	count := 0

	run := 0
	for _, r := range runes {
		if unicode.IsSpace(r) {
			run++
		} else {
			if run >= 3 {
				count++
			}
			run = 0
		}
	}
	if run >= 3 {
		count++
	}

	for i := 1; i < len(runes); i++ {
		if runes[i-1] == ' ' && isPunct(runes[i]) {
			count++
		}
	}

	for i := 0; i+2 < len(runes); i++ {
		if unicode.IsLetter(runes[i]) && runes[i+1] == ' ' && unicode.IsLetter(runes[i+2]) {
			if i+3 < len(runes) && unicode.IsLetter(runes[i+3]) {
				count++
			}
		}
	}

	denom := math.Max(float64(len(runes)), 1)
	return clamp01(float64(count) / denom * 10)
}

func isPunct(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?':
		return true
	}
	return false
}

// charCorruptionScore counts adjacent pairs drawn from a small set of
// OCR-corrupted-looking symbol pairs, normalized by text length.
func charCorruptionScore(text string) float64 {
	pairs := [][2]rune{{'|', '!'}, {'(', ')'}, {'{', '}'}, {'$', '@'}, {'@', '#'}, {'$', '#'}}
	runes := []rune(text)
	count := 0
	for i := 0; i+1 < len(runes); i++ {
		a, b := runes[i], runes[i+1]
		for _, p := range pairs {
			if (a == p[0] && b == p[1]) || (a == p[1] && b == p[0]) {
				count++
				break
			}
		}
	}
	denom := math.Max(float64(len(runes))/20, 10)
	return clamp01(float64(count) / denom)
}

// normalizedEntropy returns the Shannon entropy of text's character
// distribution, normalized by log2(96) (the approximate size of the
// printable-ASCII-plus-common-punctuation alphabet).
func normalizedEntropy(text string) float64 {
	if text == "" {
		return 0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		counts[r]++
		total++
	}
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return clamp01(entropy / math.Log2(96))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
