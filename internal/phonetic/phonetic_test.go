package phonetic

import "testing"

func TestMatch_Exact(t *testing.T) {
	m := New([]string{"patricia"})
	r, ok := m.Match("patricia")
	if !ok || r.Type != Exact || r.Confidence != 1.0 {
		t.Errorf("got %+v, ok=%v", r, ok)
	}
}

func TestMatch_PhoneticallySimilar(t *testing.T) {
	m := New([]string{"stephen"})
	r, ok := m.Match("steven")
	if !ok {
		t.Fatal("expected a phonetic match for Stephen/Steven")
	}
	if r.Term != "stephen" {
		t.Errorf("got term %q, want stephen", r.Term)
	}
}

func TestMatch_NoCandidates(t *testing.T) {
	m := New([]string{"patricia"})
	if _, ok := m.Match("zzzxxxqqq"); ok {
		t.Error("expected no match for an unrelated query")
	}
}

func TestMatch_OCRDigitInverse(t *testing.T) {
	m := New([]string{"bob"})
	// OCR corruption: digits standing in for their letter look-alikes.
	r, ok := m.Match("808")
	if !ok {
		t.Fatal("expected OCR-normalized query to match")
	}
	if r.Term != "bob" {
		t.Errorf("got term %q, want bob", r.Term)
	}
}

func TestMatch_EmptyQuery(t *testing.T) {
	m := New([]string{"patricia"})
	if _, ok := m.Match(""); ok {
		t.Error("empty query should not match")
	}
}
