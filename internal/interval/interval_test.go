package interval

import (
	"testing"

	"phi-redactor/internal/span"
)

func det(start, end uint32, ft span.FilterType) span.Detection {
	return span.Detection{CharacterStart: start, CharacterEnd: end, FilterType: ft, Confidence: 0.9}
}

func TestInsertAndGet(t *testing.T) {
	tree := New()
	key := tree.Insert(det(5, 10, span.SSN))
	got, ok := tree.Get(key)
	if !ok {
		t.Fatal("expected to find inserted span")
	}
	if got.CharacterStart != 5 || got.CharacterEnd != 10 {
		t.Errorf("got %+v", got)
	}
}

func TestFindOverlaps(t *testing.T) {
	tree := New()
	tree.Insert(det(0, 20, span.Name))
	tree.Insert(det(5, 14, span.SSN))
	tree.Insert(det(50, 60, span.Email))

	overlaps := tree.FindOverlaps(5, 14)
	if len(overlaps) != 2 {
		t.Fatalf("expected 2 overlapping spans, got %d: %+v", len(overlaps), overlaps)
	}
}

func TestFindOverlaps_NoMatch(t *testing.T) {
	tree := New()
	tree.Insert(det(0, 10, span.Name))
	overlaps := tree.FindOverlaps(20, 30)
	if len(overlaps) != 0 {
		t.Errorf("expected no overlaps, got %+v", overlaps)
	}
}

func TestRemove(t *testing.T) {
	tree := New()
	key := tree.Insert(det(0, 10, span.Name))
	if !tree.Remove(key) {
		t.Fatal("expected remove to succeed")
	}
	if tree.Has(key) {
		t.Error("key should no longer be present after remove")
	}
	if tree.Size() != 0 {
		t.Errorf("expected size 0 after remove, got %d", tree.Size())
	}
}

func TestRemove_DoubleRemoveFails(t *testing.T) {
	tree := New()
	key := tree.Insert(det(0, 10, span.Name))
	tree.Remove(key)
	if tree.Remove(key) {
		t.Error("expected second remove of the same key to fail")
	}
}

func TestSameIntervalAppendsToNode(t *testing.T) {
	tree := New()
	tree.Insert(det(0, 10, span.Name))
	tree.Insert(det(0, 10, span.SSN))
	if tree.Size() != 2 {
		t.Errorf("expected 2 spans stored at the shared interval, got %d", tree.Size())
	}
	all := tree.GetAllSpans()
	if len(all) != 2 {
		t.Errorf("expected 2 spans from GetAllSpans, got %d", len(all))
	}
}

func TestClear(t *testing.T) {
	tree := New()
	tree.Insert(det(0, 10, span.Name))
	tree.Clear()
	if tree.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", tree.Size())
	}
	if len(tree.GetAllSpans()) != 0 {
		t.Error("expected no spans after clear")
	}
}
