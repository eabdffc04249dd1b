package stream

import (
	"unicode/utf16"

	"phi-redactor/internal/span"
)

// DetectFunc runs a detection pass over a combined tail+chunk string.
type DetectFunc func(text string) []span.Detection

// ScanningKernel keeps its own overlap tail (it does not use a Kernel);
// each Push runs a detection pipeline over the tail carried from the
// previous push concatenated
// with the new chunk, translates detection offsets to the document's
// global coordinate space, and re-derives the tail from the combined
// string.
type ScanningKernel struct {
	overlap      uint32
	tail         string
	globalOffset uint32
	detect       DetectFunc
}

// NewScanningKernel returns a ScanningKernel that retains overlap
// UTF-16 units of trailing context between pushes and runs detect over
// each combined tail+chunk.
func NewScanningKernel(overlap uint32, detect DetectFunc) *ScanningKernel {
	return &ScanningKernel{overlap: overlap, detect: detect}
}

// Push processes chunk and returns detections translated into global
// document coordinates. Detections that end at or before the previous
// chunk boundary (already reported by an earlier push) are discarded.
func (s *ScanningKernel) Push(chunk string) []span.Detection {
	combined := s.tail + chunk
	tailLenU16 := utf16Len(s.tail)
	segmentStart := s.globalOffset - tailLenU16
	prevChunkBoundary := s.globalOffset

	raw := s.detect(combined)
	out := make([]span.Detection, 0, len(raw))
	for _, d := range raw {
		shifted := d
		shifted.CharacterStart = segmentStart + d.CharacterStart
		shifted.CharacterEnd = segmentStart + d.CharacterEnd
		if shifted.CharacterEnd <= prevChunkBoundary {
			// Entirely inside the already-reported portion of the previous tail.
			continue
		}
		out = append(out, shifted)
	}

	s.globalOffset = segmentStart + utf16Len(combined)
	s.tail = trimToTailUTF16(combined, s.overlap)
	return out
}

// trimToTailUTF16 returns the suffix of s containing at most width
// UTF-16 code units, cut on a rune boundary.
func trimToTailUTF16(s string, width uint32) string {
	units := utf16.Encode([]rune(s))
	if uint32(len(units)) <= width {
		return s
	}
	return string(utf16.Decode(units[uint32(len(units))-width:]))
}
