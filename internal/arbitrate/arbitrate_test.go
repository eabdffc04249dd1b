package arbitrate

import (
	"testing"

	"phi-redactor/internal/span"
)

func det(start, end uint32, ft span.FilterType, text string, confidence float64) span.Detection {
	return span.Detection{CharacterStart: start, CharacterEnd: end, FilterType: ft, Text: text, Confidence: confidence}
}

func TestDropOverlapping_Empty(t *testing.T) {
	if got := DropOverlapping(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestDropOverlapping_Single(t *testing.T) {
	spans := []span.Detection{det(0, 5, span.SSN, "12345", 0.9)}
	got := DropOverlapping(spans)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0], got %v", got)
	}
}

// Spec scenario S2: an MRN span fully contained inside a NAME span must
// win, since MRN's specificity (95) far exceeds NAME's (35) — the NAME
// candidate containing it is dropped.
func TestDropOverlapping_MRNInsideNameWins(t *testing.T) {
	spans := []span.Detection{
		det(0, 30, span.Name, "Patient John Smith MRN 445566", 0.85),
		det(24, 30, span.MRN, "445566", 0.95),
	}
	kept := DropOverlapping(spans)
	if len(kept) != 1 {
		t.Fatalf("expected exactly one surviving span, got %d: %v", len(kept), kept)
	}
	if spans[kept[0]].FilterType != span.MRN {
		t.Errorf("expected MRN to survive, got %s", spans[kept[0]].FilterType)
	}
}

// Invariant: the kept set returned must be pairwise non-overlapping.
func TestDropOverlapping_OutputNonOverlapping(t *testing.T) {
	spans := []span.Detection{
		det(0, 10, span.Name, "John Smith", 0.8),
		det(5, 15, span.SSN, "123-45-6789", 0.95),
		det(20, 30, span.Email, "a@b.com", 0.9),
	}
	kept := DropOverlapping(spans)
	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			a, b := spans[kept[i]], spans[kept[j]]
			if a.Overlaps(b) {
				t.Errorf("kept spans %+v and %+v overlap", a, b)
			}
		}
	}
}

// Disjoint spans never interact and all survive.
func TestDropOverlapping_DisjointSpansAllSurvive(t *testing.T) {
	spans := []span.Detection{
		det(0, 5, span.SSN, "12345", 0.9),
		det(10, 15, span.Email, "a@b.c", 0.9),
		det(20, 25, span.Phone, "55555", 0.9),
	}
	kept := DropOverlapping(spans)
	if len(kept) != 3 {
		t.Errorf("expected all 3 disjoint spans to survive, got %d", len(kept))
	}
}

// Exact duplicates at the same (start, end, type) collapse to the
// highest-confidence member.
func TestDropOverlapping_ExactDuplicatesCollapse(t *testing.T) {
	spans := []span.Detection{
		det(0, 5, span.SSN, "12345", 0.70),
		det(0, 5, span.SSN, "12345", 0.95),
	}
	kept := DropOverlapping(spans)
	if len(kept) != 1 {
		t.Fatalf("expected duplicates to collapse to 1, got %d", len(kept))
	}
	if spans[kept[0]].Confidence != 0.95 {
		t.Errorf("expected the higher-confidence duplicate to survive, got confidence %f", spans[kept[0]].Confidence)
	}
}

// A NAME span whose text includes a structure word (e.g. "MRN") gets
// its length contribution zeroed, lowering its score against a
// contained higher-specificity span.
func TestCalculateScore_StructureWordZeroesLength(t *testing.T) {
	withWord := calculateScore(20, 0.9, 35, 0, span.Name, "Patient MRN Smith")
	withoutWord := calculateScore(20, 0.9, 35, 0, span.Name, "Patient John Smith")
	if withWord >= withoutWord {
		t.Errorf("score with structure word (%f) should be lower than without (%f)", withWord, withoutWord)
	}
}

// A higher-specificity span fully inside a lower-specificity NAME span
// outscores and survives it, even when the NAME span is longer.
func TestDropOverlapping_HighSpecificityContainedSpanSurvives(t *testing.T) {
	spans := []span.Detection{
		det(0, 30, span.Name, "Patient record holder Jane Doe", 0.5),
		det(22, 30, span.SSN, "123456789", 0.95),
	}
	kept := DropOverlapping(spans)
	foundSSN := false
	for _, idx := range kept {
		if spans[idx].FilterType == span.SSN {
			foundSSN = true
		}
	}
	if !foundSSN {
		t.Errorf("expected the high-confidence SSN span to survive, kept=%v", kept)
	}
}
