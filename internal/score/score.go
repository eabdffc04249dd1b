// Package score implements the weighted PHI scorer: per-span base
// confidence, surrounding-context bonuses, and whitelist penalties
// combine into a final score and a PHI/NOT_PHI/UNCERTAIN decision.
package score

import (
	"strings"
	"unicode/utf16"

	"phi-redactor/internal/span"
)

// Decision is the scorer's three-way verdict for a span.
type Decision string

const (
	PHI       Decision = "PHI"
	NotPHI    Decision = "NOT_PHI"
	Uncertain Decision = "UNCERTAIN"
)

// Result carries the scored outcome for one span.
type Result struct {
	Score    float64
	Decision Decision
}

// highPrecisionSet are filter types whose own detector already runs a
// structural validator, so their base confidence is fixed high
// regardless of carried confidence.
var highPrecisionSet = map[span.FilterType]struct{}{
	span.SSN: {}, span.Email: {}, span.Phone: {}, span.Fax: {},
	span.MRN: {}, span.CreditCard: {}, span.Account: {}, span.IP: {}, span.URL: {},
}

// Scorer evaluates Detections against the surrounding document text.
type Scorer struct {
	threshold float64
}

// New returns a Scorer using threshold as the PHI/NOT_PHI midpoint
// (±0.15 defines the UNCERTAIN band). threshold <= 0 defaults to 0.50.
func New(threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = 0.50
	}
	return &Scorer{threshold: threshold}
}

// Score returns the final clamped score and decision for d, given the
// full document text it was detected in.
func (s *Scorer) Score(d span.Detection, text string) Result {
	final := clamp01(base(d) + contextBonus(d, text) + whitelistPenalty(d))
	return Result{Score: final, Decision: s.decide(final)}
}

func (s *Scorer) decide(score float64) Decision {
	switch {
	case score >= s.threshold+0.15:
		return PHI
	case score < s.threshold-0.15:
		return NotPHI
	default:
		return Uncertain
	}
}

func base(d span.Detection) float64 {
	if _, ok := highPrecisionSet[d.FilterType]; ok {
		return 0.95
	}
	if d.FilterType != span.Name {
		return d.Confidence
	}
	switch {
	case strings.Contains(d.Pattern, "last_first"):
		return 0.95
	case strings.Contains(d.Pattern, "titled"):
		return 0.92
	case strings.Contains(d.Pattern, "patient"):
		return 0.90
	case strings.Contains(d.Pattern, "family"), strings.Contains(d.Pattern, "relation"):
		return 0.90
	default:
		return 0.70
	}
}

const contextWindow = 100

// contextBonus sums every applicable signal found within ±contextWindow
// UTF-16 code units of d.
func contextBonus(d span.Detection, text string) float64 {
	units := utf16.Encode([]rune(text))
	lo := int(d.CharacterStart) - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := int(d.CharacterEnd) + contextWindow
	if hi > len(units) {
		hi = len(units)
	}
	if lo > hi || lo > len(units) {
		return 0
	}
	before := strings.ToLower(string(utf16.Decode(units[lo:int(d.CharacterStart)])))
	window := strings.ToLower(string(utf16.Decode(units[lo:hi])))

	var bonus float64
	if containsAny(before, titlePrefixes) {
		bonus += 0.25
	}
	if containsAny(window, familyTerms) {
		bonus += 0.30
	}
	if strings.Contains(window, strings.ToLower(d.Text)) && hasPHILabel(window) {
		bonus += 0.20
	}
	if containsAny(window, clinicalRoles) {
		bonus += 0.25
	}
	return bonus
}

var titlePrefixes = []string{"dr.", "dr ", "mr.", "mr ", "mrs.", "mrs ", "ms.", "ms ", "prof.", "prof "}
var familyTerms = []string{"mother", "father", "spouse", "sister", "brother", "son", "daughter", "wife", "husband", "parent", "guardian"}
var clinicalRoles = []string{"performed by:", "performed by", "ordered by:", "reviewed by:", "signed by:"}

func hasPHILabel(window string) bool {
	for _, ch := range window {
		if ch == ':' {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// whitelistPenalty applies only to NAME detections; it returns the
// first matching closed-set penalty, or 0 if none match.
func whitelistPenalty(d span.Detection) float64 {
	if d.FilterType != span.Name {
		return 0
	}
	lower := strings.ToLower(strings.TrimSpace(d.Text))
	switch {
	case containsMember(lower, diseaseEponyms):
		return -0.90
	case containsMember(lower, diseaseNames):
		return -0.85
	case containsMember(lower, medications):
		return -0.80
	case containsMember(lower, procedures):
		return -0.75
	case containsMember(lower, anatomicalTerms):
		return -0.70
	case containsMember(lower, sectionHeaders):
		return -0.65
	case containsMember(lower, organizationTokens):
		return -0.60
	default:
		return 0
	}
}

func containsMember(text string, set map[string]struct{}) bool {
	if _, ok := set[text]; ok {
		return true
	}
	for word := range set {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
