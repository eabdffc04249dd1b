package identifier

import (
	"regexp"

	"phi-redactor/internal/span"
)

// validateFunc inspects the raw matched text (and the match's position
// in the source, for context-window checks) and returns whether the
// candidate should be emitted, plus the confidence to emit it with.
type validateFunc func(c *candidate) (bool, float64)

// candidate carries everything a validator needs: the raw match, the
// full source it was found in, and the match's byte offsets.
type candidate struct {
	text       string
	fullText   string
	byteStart  int
	byteEnd    int
	ocrApplied bool
}

// pattern is one compiled regex family contributing detections for a
// single filter type.
type pattern struct {
	filterType   span.FilterType
	id           string // provenance string carried on Detection.Pattern
	regex        *regexp.Regexp
	baseConf     float64
	validate     validateFunc // nil means "always accept at baseConf"
	useOCR       bool         // also scan the OCR-normalized text
	captureGroup int          // 0 = whole match is the detection span
}

func always(conf float64) validateFunc {
	return func(c *candidate) (bool, float64) { return true, conf }
}

// patterns is the full closed catalogue of identifier-scanner regex
// families. Detections are sorted by start offset after scanning, but
// order decides which category a span gets when two patterns match the
// same (start, end): ScanAll keeps the first. The order follows the
// category ordering of the external tag vocabulary.
var patterns = buildPatterns()

func mustCompile(re string) *regexp.Regexp {
	return regexp.MustCompile(re)
}
