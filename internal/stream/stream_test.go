package stream

import (
	"strings"
	"testing"

	"phi-redactor/internal/span"
)

func TestPopSegment_EmptyBufferReturnsFalse(t *testing.T) {
	k := New(Sentence, 100, 10)
	if _, ok := k.PopSegment(false); ok {
		t.Error("expected no segment from an empty buffer")
	}
}

func TestPopSegment_SentenceModeFlushesAtSentenceEnd(t *testing.T) {
	k := New(Sentence, 1000, 0)
	k.Push("First sentence. Second is incomplete")
	seg, ok := k.PopSegment(false)
	if !ok {
		t.Fatal("expected a segment at the sentence boundary")
	}
	if seg != "First sentence." {
		t.Errorf("got %q", seg)
	}
}

func TestPopSegment_SentenceModeNoBoundaryYieldsNothing(t *testing.T) {
	k := New(Sentence, 1000, 0)
	k.Push("no terminal punctuation yet")
	if _, ok := k.PopSegment(false); ok {
		t.Error("expected no flush without a sentence boundary")
	}
}

func TestPopSegment_ImmediateModeFlushesNearBufferSize(t *testing.T) {
	k := New(Immediate, 10, 0)
	k.Push("hello world this is text")
	seg, ok := k.PopSegment(false)
	if !ok {
		t.Fatal("expected a flush once buffer_size is reached")
	}
	if strings.TrimSpace(seg) == "" {
		t.Error("expected a non-empty flushed segment")
	}
	if len([]rune(seg)) > 10 {
		t.Errorf("expected the flush point to land at or before buffer_size, got %q", seg)
	}
}

func TestPopSegment_Force(t *testing.T) {
	k := New(Sentence, 1000, 5)
	k.Push("incomplete sentence with no terminator")
	seg, ok := k.PopSegment(true)
	if !ok {
		t.Fatal("expected force=true to always flush")
	}
	if seg != "incomplete sentence with no terminator" {
		t.Errorf("expected the whole buffer back, got %q", seg)
	}
	if k.bufferLenUTF16 != 0 {
		t.Errorf("expected an empty buffer after a forced flush, got length %d", k.bufferLenUTF16)
	}
}

func TestPopSegment_RetainsOverlapTail(t *testing.T) {
	k := New(Sentence, 1000, 5)
	k.Push("First sentence. ")
	seg, ok := k.PopSegment(false)
	if !ok {
		t.Fatal("expected a flush at the sentence boundary")
	}
	if len([]rune(seg)) >= len("First sentence. ") {
		t.Errorf("expected the overlap tail to be retained rather than flushed, got %q", seg)
	}
}

func TestPopSegment_SafetyValve(t *testing.T) {
	k := New(Sentence, 5, 0)
	k.Push("abcdefghijklmnopqrstuvwxyz")
	seg, ok := k.PopSegment(false)
	if !ok {
		t.Fatal("expected the safety valve to force a hard cut once the buffer exceeds 2x buffer_size with no sentence boundary")
	}
	if len(seg) != 5 {
		t.Errorf("expected a hard cut at buffer_size (5), got %q", seg)
	}
}

func TestScanningKernel_TranslatesOffsetsToGlobalCoordinates(t *testing.T) {
	detect := func(text string) []span.Detection {
		idx := strings.Index(text, "PHI")
		if idx < 0 {
			return nil
		}
		return []span.Detection{{CharacterStart: uint32(idx), CharacterEnd: uint32(idx + 3), FilterType: span.Custom, Text: "PHI"}}
	}
	sk := NewScanningKernel(4, detect)

	first := sk.Push("no match here")
	if len(first) != 0 {
		t.Fatalf("expected no detections in the first chunk, got %v", first)
	}

	second := sk.Push(" and PHI appears now")
	if len(second) != 1 {
		t.Fatalf("expected exactly one detection, got %d: %v", len(second), second)
	}
	if second[0].CharacterStart < uint32(len("no match here")) {
		t.Errorf("expected the detection offset translated past the first chunk, got %+v", second[0])
	}
}

func TestScanningKernel_DiscardsAlreadyReportedTailDetections(t *testing.T) {
	detect := func(text string) []span.Detection {
		idx := strings.Index(text, "PHI")
		if idx < 0 {
			return nil
		}
		return []span.Detection{{CharacterStart: uint32(idx), CharacterEnd: uint32(idx + 3), FilterType: span.Custom, Text: "PHI"}}
	}
	sk := NewScanningKernel(10, detect)
	first := sk.Push("leading PHI text")
	if len(first) != 1 {
		t.Fatalf("expected one detection in the first push, got %d", len(first))
	}
	second := sk.Push(" more text without a repeat")
	for _, d := range second {
		if d.Text == "PHI" {
			t.Error("expected the tail-retained PHI detection not to be re-reported")
		}
	}
}
