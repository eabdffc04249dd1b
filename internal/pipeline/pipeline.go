// Package pipeline wires the identifier scanner, name scanner, overlap
// arbitrator, weighted scorer, and post-filter into the single Detect
// call a caller drives per document.
package pipeline

import (
	"sort"
	"time"

	"phi-redactor/internal/arbitrate"
	"phi-redactor/internal/chaos"
	"phi-redactor/internal/config"
	"phi-redactor/internal/dictionary"
	"phi-redactor/internal/identifier"
	"phi-redactor/internal/interval"
	"phi-redactor/internal/logger"
	"phi-redactor/internal/metrics"
	"phi-redactor/internal/namescan"
	"phi-redactor/internal/postfilter"
	"phi-redactor/internal/score"
	"phi-redactor/internal/span"
	"phi-redactor/internal/stream"
)

// Finding is one surviving, scored detection ready for display or
// redaction.
type Finding struct {
	Detection span.Detection
	Score     score.Result
}

// Pipeline runs Components C, D, I, K, and J over a document in that
// order, sharing one NameDictionary and one set of ambient loggers and
// counters across calls.
type Pipeline struct {
	identifiers   *identifier.Scanner
	names         *namescan.Scanner
	baseThreshold float64
	chaos         *chaos.Analyzer
	log           *logger.Logger
	metrics       *metrics.Metrics
}

// New returns a Pipeline backed by dict for name validation, scoring
// at cfg's decision threshold (adapted per document by the chaos
// analyzer for noisy OCR text), logging under the "PIPELINE" component
// tag, and recording counters on m.
func New(dict *dictionary.NameDictionary, cfg *config.Config, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		identifiers:   identifier.New(),
		names:         namescan.New(dict),
		baseThreshold: cfg.DecisionThreshold,
		chaos:         chaos.New(cfg.ChaosCacheSize),
		log:           logger.New("PIPELINE", cfg.LogLevel),
		metrics:       m,
	}
}

// Detect runs the full scan-arbitrate-filter-score pipeline over text
// and returns the surviving findings sorted by character_start.
func (p *Pipeline) Detect(text string) []Finding {
	if text == "" {
		return nil
	}

	analysis := p.chaos.Analyze(text)
	threshold := p.baseThreshold
	if analysis.Tier != chaos.Clean {
		threshold = analysis.RecommendedThreshold
		p.log.Debugf("chaos", "document tier %s, adapting threshold %.2f -> %.2f", analysis.Tier, p.baseThreshold, threshold)
	}
	scorer := score.New(threshold)

	scanStart := time.Now()
	candidates := make([]span.Detection, 0, 32)
	candidates = append(candidates, p.identifiers.ScanAll(text)...)
	candidates = append(candidates, p.names.ScanAll(text)...)
	if p.metrics != nil {
		p.metrics.RecordScanLatency(time.Since(scanStart))
		p.metrics.DetectionsEmitted.Add(int64(len(candidates)))
	}

	if len(candidates) == 0 {
		if p.metrics != nil {
			p.metrics.DocumentsScanned.Add(1)
		}
		return nil
	}

	arbitrateStart := time.Now()
	keptIdx := arbitrate.DropOverlapping(candidates)
	if p.metrics != nil {
		p.metrics.RecordArbitrationLatency(time.Since(arbitrateStart))
	}

	findings := make([]Finding, 0, len(keptIdx))
	for _, i := range keptIdx {
		d := candidates[i]

		decision := postfilter.ShouldKeep(d)
		if !decision.Keep {
			p.log.Debugf("post_filter", "dropped %s span %q: %s", d.FilterType, d.Text, decision.RemovedBy)
			continue
		}

		result := scorer.Score(d, text)
		findings = append(findings, Finding{Detection: d, Score: result})
	}

	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Detection.CharacterStart < findings[j].Detection.CharacterStart
	})

	if p.metrics != nil {
		p.metrics.DocumentsScanned.Add(1)
		p.metrics.DetectionsKept.Add(int64(len(findings)))
		p.metrics.DetectionsSuppressed.Add(int64(len(candidates) - len(findings)))
	}

	return findings
}

// Index builds an interval tree over findings' detections, letting a
// caller ask "does this character range overlap a finding?" in
// O(log n + k) instead of scanning the findings slice linearly. This
// is useful for callers that check many arbitrary ranges against one
// document's results — a redaction-review UI paging through a
// document, for instance — rather than redoing Detect's own
// O(n) arbitration pass.
func (p *Pipeline) Index(findings []Finding) *interval.Tree {
	t := interval.New()
	for _, f := range findings {
		t.Insert(f.Detection)
	}
	return t
}

// NewStreamScanner wraps this Pipeline's detection pass in a
// stream.ScanningKernel, so a caller feeding text in segments (e.g.
// the sentence/buffer-bounded output of a stream.Kernel fed from
// stdin) gets back detections in the full document's coordinate
// space. Each push re-runs detection over the retained overlap tail plus
// the new segment; detections ending inside an earlier segment are not
// reported again.
// The returned detections carry no Score: scoring needs the full
// surrounding-document context a single segment doesn't have, so a
// streaming caller either scores once over the assembled document or
// accepts unscored spans for display.
func (p *Pipeline) NewStreamScanner(overlap uint32) *stream.ScanningKernel {
	return stream.NewScanningKernel(overlap, func(text string) []span.Detection {
		findings := p.Detect(text)
		out := make([]span.Detection, len(findings))
		for i, f := range findings {
			out[i] = f.Detection
		}
		return out
	})
}
