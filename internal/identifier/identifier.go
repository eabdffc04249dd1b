// Package identifier implements the structured-PHI regex scanner:
// twenty-plus category pattern families (SSN, credit card, dates,
// addresses, vehicle/device identifiers, ages, …), some backed by a
// domain validator from internal/validate, scanned against both the
// raw text and an OCR-normalized copy.
package identifier

import (
	"sort"

	"phi-redactor/internal/offset"
	"phi-redactor/internal/span"
	"phi-redactor/internal/validate"
)

// Scanner runs the full identifier pattern catalogue against a
// document. It holds no mutable state beyond the compiled regex
// table, which is built once at package init and shared by every
// scan — concurrent calls to ScanAll from multiple goroutines are
// safe.
type Scanner struct{}

// New returns a ready-to-use identifier Scanner.
func New() *Scanner { return &Scanner{} }

type dedupKey struct {
	start uint32
	end   uint32
}

// ScanAll runs every pattern family against text and returns the
// surviving detections sorted by character_start (UTF-16 offset).
// Duplicate (start, end) pairs are collapsed, keeping the first
// category-specific match encountered.
func (s *Scanner) ScanAll(text string) []span.Detection {
	if text == "" {
		return nil
	}
	idx := offset.Build(text)
	ocrText := validate.NormalizeOCRDigits(text)

	seen := make(map[dedupKey]struct{})
	var out []span.Detection

	for _, pat := range patterns {
		out = append(out, s.runPattern(pat, text, idx, seen)...)
		if pat.useOCR {
			out = append(out, s.runPattern(pat, ocrText, idx, seen)...)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CharacterStart < out[j].CharacterStart
	})
	return out
}

func (s *Scanner) runPattern(pat pattern, text string, idx *offset.Index, seen map[dedupKey]struct{}) []span.Detection {
	matches := pat.regex.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	var out []span.Detection
	for _, m := range matches {
		groupStart, groupEnd := m[0], m[1]
		gi := pat.captureGroup * 2
		if gi+1 < len(m) && m[gi] >= 0 {
			groupStart, groupEnd = m[gi], m[gi+1]
		}
		if groupStart < 0 || groupEnd < 0 || groupStart >= groupEnd {
			continue
		}

		matchedText := text[groupStart:groupEnd]
		conf := pat.baseConf
		ok := true
		if pat.validate != nil {
			ok, conf = pat.validate(&candidate{
				text:      matchedText,
				fullText:  text,
				byteStart: groupStart,
				byteEnd:   groupEnd,
			})
		}
		if !ok {
			continue
		}

		u16Start := idx.ByteToUTF16(uint32(groupStart))
		u16End := idx.ByteToUTF16(uint32(groupEnd))
		key := dedupKey{u16Start, u16End}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, span.Detection{
			CharacterStart: u16Start,
			CharacterEnd:   u16End,
			FilterType:     pat.filterType,
			Text:           matchedText,
			Confidence:     clamp01(conf),
			Pattern:        pat.id,
			Priority:       0,
		})
	}
	return out
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
