// Package namescan implements the dictionary-anchored name scanner:
// title/possessive/hyphenated/particle and other surface-form pattern
// families, each validated against a NameDictionary before being
// emitted as a NAME detection.
package namescan

import (
	"regexp"
	"sort"
	"strings"

	"phi-redactor/internal/dictionary"
	"phi-redactor/internal/fuzzy"
	"phi-redactor/internal/offset"
	"phi-redactor/internal/phonetic"
	"phi-redactor/internal/span"
	"phi-redactor/internal/validate"
)

// fuzzyAnchorPenalty is subtracted from the confidence a fuzzy or
// phonetic anchor hit would otherwise earn, relative to an exact
// dictionary hit — an OCR-mangled or misspelled name is real evidence,
// but weaker evidence than a clean dictionary match.
const fuzzyAnchorPenalty = 0.15

// acronymDenylist holds ALL-CAPS tokens that look like standalone-name
// candidates but are common clinical acronyms, never names.
var acronymDenylist = map[string]struct{}{
	"ICU": {}, "ER": {}, "OR": {}, "MRI": {}, "CT": {}, "EKG": {}, "ECG": {},
	"BP": {}, "HR": {}, "IV": {}, "NPO": {}, "DOB": {}, "MRN": {}, "SSN": {},
	"HIPAA": {}, "PHI": {}, "PCP": {}, "RN": {}, "MD": {}, "DO": {}, "NP": {},
	"PA": {}, "CPR": {}, "DNR": {}, "COPD": {}, "CHF": {}, "DVT": {}, "PE": {},
	"UTI": {}, "CBC": {}, "BMP": {}, "CMP": {},
}

type patternSpec struct {
	id       string
	regex    *regexp.Regexp
	baseConf float64
	// tokenGroups holds the regex submatch group indices whose text
	// should be looked up in the dictionary.
	tokenGroups []int
	requireAnchor bool
}

var patterns = []patternSpec{
	{"last_first", regexp.MustCompile(`\b([A-Z][A-Za-z'` + "`" + `.-]{1,20}),\s*([A-Z][A-Za-z'` + "`" + `.-]{1,30})(?:\s+[A-Z][A-Za-z'` + "`" + `.-]{1,30})?\b`), 0.85, []int{1, 2}, false},
	{"first_last", regexp.MustCompile(`\b([A-Z][a-z'` + "`" + `.-]{1,30})\s+(?:[A-Z]\.\s+)?([A-Z][a-z'` + "`" + `.-]{1,30})\b`), 0.78, []int{1, 2}, false},
	{"accented", regexp.MustCompile(`\b(\p{Lu}[\p{Ll}'-]{1,30})\s+(\p{Lu}[\p{Ll}'-]{1,30})\b`), 0.78, []int{1, 2}, false},
	{"titled", regexp.MustCompile(`\b(?:Dr|Mr|Mrs|Ms|Miss|Prof)\.?\s+([A-Z][a-z'-]{1,30})\s+([A-Z][a-z'-]{1,30})\b`), 0.92, []int{1, 2}, false},
	{"patient_labeled", regexp.MustCompile(`(?i)\bpatient[:\s]+([A-Z][a-z'-]{1,30})\s+([A-Z][a-z'-]{1,30})\b`), 0.90, []int{1, 2}, false},
	{"family_member", regexp.MustCompile(`(?i)\b(?:mother|father|spouse|sister|brother|son|daughter|wife|husband|parent|guardian)[:\s]+([A-Z][a-z'-]{1,30})\s+([A-Z][a-z'-]{1,30})\b`), 0.88, []int{1, 2}, false},
	{"name_with_suffix", regexp.MustCompile(`\b([A-Z][a-z'-]{1,30})\s+([A-Z][a-z'-]{1,30})\s+(?:Jr|Sr|II|III|IV)\.?\b`), 0.85, []int{1, 2}, false},
	{"age_gender_introduced", regexp.MustCompile(`\b([A-Z][a-z'-]{1,30})\s+([A-Z][a-z'-]{1,30}),\s+\d{1,3}[- ]?(?:year|yo|[MF])\b`), 0.82, []int{1, 2}, false},
	{"possessive", regexp.MustCompile(`\b([A-Z][a-z'-]{1,30})'s\b`), 0.70, []int{1}, false},
	{"hyphenated", regexp.MustCompile(`\b([A-Z][a-z]{1,20}-[A-Z][a-z]{1,20})\s+([A-Z][a-z'-]{1,30})\b`), 0.80, []int{2}, false},
	{"apostrophe", regexp.MustCompile(`\b(O'[A-Z][a-z]{1,20})\s+([A-Z][a-z'-]{1,30})\b`), 0.80, []int{2}, false},
	{"particle", regexp.MustCompile(`\b((?:van|von|de|del|della|der|da|di|la|le)\s+[A-Z][a-z]{1,20})\s+([A-Z][a-z'-]{1,30})\b`), 0.78, []int{2}, false},
	{"team_member_list", regexp.MustCompile(`(?im)^\s*-\s*([A-Z][a-z'-]{1,30})\s+([A-Z][a-z'-]{1,30}),\s*(?:RN|MD|DO|NP|PA)\b`), 0.85, []int{1, 2}, false},
	{"chaos_labeled", regexp.MustCompile(`(?i)\b(?:pt|pat)[:\s]+([a-zA-Z0-9@$!][a-zA-Z0-9@$!'.-]{1,20})\s+([a-zA-Z0-9@$!][a-zA-Z0-9@$!'.-]{1,30})\b`), 0.65, []int{1, 2}, false},
	{"standalone_allcaps", regexp.MustCompile(`\b([A-Z]{2,15})\s+([A-Z]{2,15})\b`), 0.68, []int{1, 2}, true},
	{"concatenated", regexp.MustCompile(`\b([A-Z][a-z]{2,15}[A-Z][a-z]{2,15})\b`), 0.68, []int{1}, true},
}

// Scanner runs the name-pattern catalogue against a document,
// validating candidates against an immutable NameDictionary, with a
// fuzzy and phonetic fallback for tokens the dictionary misses
// outright (OCR noise, misspellings, transliteration).
type Scanner struct {
	dict     *dictionary.NameDictionary
	fuzzy    *fuzzy.Matcher
	phonetic *phonetic.Matcher
}

// New returns a Scanner anchored to dict, with fuzzy and phonetic
// indexes built over the same name list so a token that fails exact
// lookup still gets a (discounted) anchor chance before being
// rejected.
func New(dict *dictionary.NameDictionary) *Scanner {
	s := &Scanner{dict: dict}
	if dict != nil {
		names := dict.AllNames()
		s.fuzzy = fuzzy.New(names, fuzzy.DefaultConfig())
		s.phonetic = phonetic.New(names)
	}
	return s
}

// anchors reports whether tok anchors to the dictionary, either
// exactly/OCR-normalized (full confidence) or via a fuzzy/phonetic
// fallback (discounted confidence, reduced by fuzzyAnchorPenalty).
func (s *Scanner) anchors(tok string) (hit bool, discounted bool) {
	normalized := validate.NormalizeOCRLetters(tok)
	if s.dict.IsAnyName(tok) || s.dict.IsAnyName(normalized) {
		return true, false
	}
	if len(tok) < 3 {
		return false, false
	}
	if s.fuzzy != nil {
		if _, ok := s.fuzzy.Lookup(tok); ok {
			return true, true
		}
	}
	if s.phonetic != nil {
		if _, ok := s.phonetic.Match(tok); ok {
			return true, true
		}
	}
	return false, false
}

// ScanAll returns NAME detections sorted by character_start, deduped
// to the highest-confidence match per (start, end) pattern family.
func (s *Scanner) ScanAll(text string) []span.Detection {
	if text == "" || s.dict == nil {
		return nil
	}
	idx := offset.Build(text)

	type key struct {
		start, end uint32
	}
	best := make(map[key]span.Detection)

	for _, pat := range patterns {
		matches := pat.regex.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			matchStart, matchEnd := m[0], m[1]
			// The span starts at the first captured group, so a title or
			// label matched in front of the name is not part of it.
			if len(m) >= 4 && m[2] >= 0 {
				matchStart = m[2]
			}
			conf, ok := s.confidenceFor(pat, text, m)
			if !ok {
				continue
			}
			u16Start := idx.ByteToUTF16(uint32(matchStart))
			u16End := idx.ByteToUTF16(uint32(matchEnd))
			k := key{u16Start, u16End}
			if existing, dup := best[k]; dup && existing.Confidence >= conf {
				continue
			}
			best[k] = span.Detection{
				CharacterStart: u16Start,
				CharacterEnd:   u16End,
				FilterType:     span.Name,
				Text:           text[matchStart:matchEnd],
				Confidence:     conf,
				Pattern:        pat.id,
			}
		}
	}

	out := make([]span.Detection, 0, len(best))
	for _, d := range best {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CharacterStart < out[j].CharacterStart })
	return out
}

// confidenceFor applies the dictionary-anchoring rule: two or more
// captured tokens in the dictionary bump confidence by 0.10 (capped
// 0.95), as does the single token of a one-token pattern; one of two
// tokens bumps it by 0.05 (capped 0.92); none rejects the candidate. Patterns
// marked requireAnchor (standalone ALL-CAPS, concatenated) additionally
// reject when no token anchors and — for ALL-CAPS — when the full
// match is a known clinical acronym.
func (s *Scanner) confidenceFor(pat patternSpec, text string, m []int) (float64, bool) {
	if pat.id == "standalone_allcaps" {
		full := text[m[0]:m[1]]
		for _, word := range strings.Fields(full) {
			if _, denied := acronymDenylist[word]; denied {
				return 0, false
			}
		}
	}
	if pat.id == "concatenated" {
		if ok, names := splitConcatenated(text[m[0]:m[1]], s.dict); ok {
			return confidenceFromHits(pat.baseConf, names), true
		}
		return 0, false
	}

	hits := 0
	total := 0
	anyDiscounted := false
	for _, g := range pat.tokenGroups {
		gi := g * 2
		if gi+1 >= len(m) || m[gi] < 0 {
			continue
		}
		total++
		tok := text[m[gi]:m[gi+1]]
		hit, discounted := s.anchors(tok)
		if hit {
			hits++
			anyDiscounted = anyDiscounted || discounted
		}
	}
	if total == 0 {
		return 0, false
	}
	if hits == 0 {
		return 0, false
	}
	conf := confidenceFromHitCount(pat.baseConf, hits, total)
	if anyDiscounted {
		conf -= fuzzyAnchorPenalty
		if conf < 0 {
			conf = 0
		}
	}
	return conf, true
}

func confidenceFromHitCount(base float64, hits, total int) float64 {
	switch {
	case hits >= 2:
		return capAt(base+0.10, 0.95)
	case hits == 1:
		if total == 1 {
			return capAt(base+0.10, 0.95)
		}
		return capAt(base+0.05, 0.92)
	default:
		return 0
	}
}

func confidenceFromHits(base float64, nameCount int) float64 {
	if nameCount >= 2 {
		return capAt(base+0.10, 0.95)
	}
	return capAt(base+0.05, 0.92)
}

func capAt(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// splitConcatenated tries every internal uppercase boundary of a
// CamelCase token, e.g. "JohnSmith" -> ("John","Smith"), and reports
// whether at least one of the two halves is a known name.
func splitConcatenated(tok string, dict *dictionary.NameDictionary) (bool, int) {
	for i := 1; i < len(tok); i++ {
		if tok[i] < 'A' || tok[i] > 'Z' {
			continue
		}
		left, right := tok[:i], tok[i:]
		leftHit := dict.IsAnyName(left)
		rightHit := dict.IsAnyName(right)
		if leftHit || rightHit {
			count := 0
			if leftHit {
				count++
			}
			if rightHit {
				count++
			}
			return true, count
		}
	}
	return false, 0
}
