// Package arbitrate implements the overlap arbitrator: collapse
// exact-duplicate detections, score the survivors, and greedily
// resolve overlaps by containment and specificity into a
// non-overlapping kept set.
package arbitrate

import (
	"math"
	"sort"
	"strings"

	"phi-redactor/internal/span"
)

// structureWords is the field-label vocabulary whose presence inside a
// NAME span zeroes that span's length contribution to its score — the
// mechanism that keeps NAME spans from swallowing adjacent labels.
var structureWords = map[string]struct{}{
	"DATE": {}, "BIRTH": {}, "RECORD": {}, "NUMBER": {}, "PHONE": {},
	"ADDRESS": {}, "EMAIL": {}, "MEMBER": {}, "ACCOUNT": {}, "STATUS": {},
	"DOB": {}, "MRN": {}, "SSN": {}, "ID": {},
}

type scoredSpan struct {
	index          int
	characterStart uint32
	characterEnd   uint32
	length         uint32
	confidence     float64
	score          float64
	typeSpec       int
}

// DropOverlapping reduces spans to the indices of a non-overlapping
// kept subset, sorted by character_start.
func DropOverlapping(spans []span.Detection) []int {
	if len(spans) == 0 {
		return nil
	}
	if len(spans) == 1 {
		return []int{0}
	}

	// Step 1: exact-duplicate collapse, keyed by (start, end, type),
	// keeping the highest-confidence member.
	type dupKey struct {
		start, end uint32
		ft         span.FilterType
	}
	best := make(map[dupKey]int)
	for i, s := range spans {
		k := dupKey{s.CharacterStart, s.CharacterEnd, s.FilterType}
		if cur, ok := best[k]; !ok || spans[cur].Confidence < s.Confidence {
			best[k] = i
		}
	}

	scored := make([]scoredSpan, 0, len(best))
	for _, idx := range best {
		s := spans[idx]
		length := uint32(0)
		if s.CharacterEnd > s.CharacterStart {
			length = s.CharacterEnd - s.CharacterStart
		}
		spec := span.SpecificityOf(s.FilterType)
		scored = append(scored, scoredSpan{
			index:          idx,
			characterStart: s.CharacterStart,
			characterEnd:   s.CharacterEnd,
			length:         length,
			confidence:     s.Confidence,
			score:          calculateScore(length, s.Confidence, spec, s.Priority, s.FilterType, s.Text),
			typeSpec:       spec,
		})
	}

	if len(scored) == 1 {
		return []int{scored[0].index}
	}

	// Step 2: sort by score desc, then start asc, then length desc.
	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if math.Abs(a.score-b.score) > 0.001 {
			return a.score > b.score
		}
		if a.characterStart != b.characterStart {
			return a.characterStart < b.characterStart
		}
		return a.length > b.length
	})

	// Step 3: greedy overlap removal with containment logic.
	var kept []scoredSpan

	for _, cand := range scored {
		shouldKeep := true
		replaceAt := -1

		for i, existing := range kept {
			if !overlaps(cand.characterStart, cand.characterEnd, existing.characterStart, existing.characterEnd) {
				continue
			}

			candContainsExisting := contains(cand.characterStart, cand.characterEnd, existing.characterStart, existing.characterEnd)
			existingContainsCand := contains(existing.characterStart, existing.characterEnd, cand.characterStart, cand.characterEnd)

			if candContainsExisting {
				if cand.typeSpec <= existing.typeSpec {
					shouldKeep = false
					break
				}
			} else if existingContainsCand {
				if cand.typeSpec > existing.typeSpec && cand.confidence >= 0.9 {
					replaceAt = i
					break
				}
				shouldKeep = false
				break
			} else {
				shouldKeep = false
				break
			}
		}

		if replaceAt >= 0 {
			kept[replaceAt] = cand
			continue
		}
		if shouldKeep {
			kept = append(kept, cand)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].characterStart < kept[j].characterStart })

	out := make([]int, len(kept))
	for i, k := range kept {
		out[i] = k.index
	}
	return out
}

func overlaps(aStart, aEnd, bStart, bEnd uint32) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

func contains(aStart, aEnd, bStart, bEnd uint32) bool {
	return aStart <= bStart && aEnd >= bEnd
}

// calculateScore computes 40*length-contribution + 30*confidence +
// 20*specificity/100 + 10*priority-contribution. The length
// contribution is forced to zero for NAME spans containing a
// structure word — the mechanism that keeps NAME spans from
// swallowing adjacent field labels.
func calculateScore(length uint32, confidence float64, spec, priority int, ft span.FilterType, text string) float64 {
	lengthRatio := math.Min(float64(length)/50, 1.0)
	if ft == span.Name && containsStructureWord(text) {
		lengthRatio = 0
	}
	lengthScore := lengthRatio * 40
	confidenceScore := confidence * 30
	typeScore := math.Min(float64(spec)/100, 1.0) * 20
	priorityScore := math.Min(float64(priority)/100, 1.0) * 10
	return lengthScore + confidenceScore + typeScore + priorityScore
}

func containsStructureWord(text string) bool {
	for _, word := range strings.Fields(text) {
		if _, ok := structureWords[strings.ToUpper(word)]; ok {
			return true
		}
	}
	return false
}
