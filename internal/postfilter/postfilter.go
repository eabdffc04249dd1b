// Package postfilter applies the deterministic, closed-set suppression
// rules that run after arbitration and before scoring: section headings,
// structure words, medical boilerplate, and label/line-break shapes
// that the upstream scanners and scorer cannot distinguish from real
// identifiers on their own.
package postfilter

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"phi-redactor/internal/span"
)

// Decision is the outcome of running a detection through the
// post-filter: whether it survives, and if not, the named rule that
// suppressed it.
type Decision struct {
	Keep      bool
	RemovedBy string
}

// ShouldKeep decides whether d survives the post-filter. The checks run
// in a fixed precedence order; the first matching rule wins.
func ShouldKeep(d span.Detection) Decision {
	text := d.Text
	lower := strings.ToLower(text)

	if (d.FilterType == span.Device || d.FilterType == span.Phone) &&
		(strings.Contains(lower, "call button") || strings.Contains(lower, "room:") || strings.Contains(lower, "bed:")) {
		return reject("DevicePhoneFalsePositive")
	}

	if d.FilterType != span.Name {
		return keep()
	}

	trimmed := strings.TrimSpace(text)
	if isAllCapsLettersWhitespace(trimmed) {
		if _, ok := sectionHeadings[trimmed]; ok {
			return reject("SectionHeading")
		}
		if !strings.ContainsAny(trimmed, " \t") {
			if _, ok := singleWordHeadings[trimmed]; ok {
				return reject("SectionHeading")
			}
		}
	}

	for _, word := range strings.Fields(text) {
		if _, ok := structureWords[strings.ToUpper(word)]; ok {
			return reject("StructureWord")
		}
	}

	if utf16Len(text) < 5 && !strings.Contains(text, ",") && d.Confidence < 0.9 {
		return reject("ShortName")
	}

	for _, prefix := range invalidStarts {
		if strings.HasPrefix(text, prefix) {
			return reject("InvalidPrefix")
		}
	}

	for _, suffix := range invalidEndings {
		if strings.HasSuffix(lower, suffix) {
			return reject("InvalidSuffix")
		}
	}

	if strings.ContainsAny(text, "\n\r") {
		normalized := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
		parts := strings.SplitN(normalized, "\n", 2)
		if len(parts) >= 2 {
			after := strings.TrimSpace(parts[1])
			if labelLike(after) {
				return reject("NameLineBreak")
			}
			afterLen := utf16Len(after)
			if afterLen > 0 && afterLen <= 24 && strings.Contains(after, ":") {
				return reject("NameLineBreak")
			}
		}
	}

	if _, ok := medicalPhrases[lower]; ok {
		return reject("MedicalPhrase")
	}

	for _, suffix := range medicalSuffixes {
		if strings.HasSuffix(text, suffix) {
			return reject("MedicalSuffix")
		}
	}

	for _, word := range strings.Fields(lower) {
		if _, ok := geoTerms[word]; ok {
			return reject("GeographicTerm")
		}
	}

	if _, ok := fieldLabels[lower]; ok {
		return reject("FieldLabel")
	}

	return keep()
}

func keep() Decision            { return Decision{Keep: true} }
func reject(r string) Decision { return Decision{Keep: false, RemovedBy: r} }

// labelLike reports whether s begins with one of the field-label
// tokens (dx, dob, mrn, ...) followed by a non-letter boundary, the
// shape of a form label rather than a continuation of a name.
func labelLike(s string) bool {
	low := strings.ToLower(s)
	for _, label := range nameBreakLabels {
		if !strings.HasPrefix(low, label) {
			continue
		}
		if len(low) == len(label) {
			return true
		}
		next, _ := utf8.DecodeRuneInString(low[len(label):])
		if !isASCIILetter(next) {
			return true
		}
	}
	return false
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isAllCapsLettersWhitespace reports whether s consists solely of
// uppercase ASCII letters and whitespace, with at least one letter.
func isAllCapsLettersWhitespace(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			continue
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
