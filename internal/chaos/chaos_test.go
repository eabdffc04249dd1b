package chaos

import (
	"strings"
	"testing"
)

func TestAnalyze_CleanText(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over lazy dogs ", 12)
	a := New(10)
	result := a.Analyze(text)
	if result.Tier != Clean {
		t.Errorf("got tier %s, want CLEAN for clean ASCII text", result.Tier)
	}
	if result.Score >= 0.15 {
		t.Errorf("got score %f, want < 0.15", result.Score)
	}
}

func TestAnalyze_NoisyText(t *testing.T) {
	a := New(10)
	result := a.Analyze("pAtRiCiA j0hN5oN, dXb: 01/01/1950")
	if result.Tier != Noisy && result.Tier != Degraded {
		t.Errorf("got tier %s, want NOISY or DEGRADED", result.Tier)
	}
	if result.RecommendedThreshold < 0.55 || result.RecommendedThreshold > 0.75 {
		t.Errorf("got threshold %f, want in [0.55, 0.75]", result.RecommendedThreshold)
	}
}

func TestAnalyze_CachedByPrefix(t *testing.T) {
	a := New(10)
	long := strings.Repeat("a", 600)
	first := a.Analyze(long)
	second := a.Analyze(long + strings.Repeat("!", 50))
	if first.Score != second.Score {
		t.Error("analysis keyed by first 500 chars should be stable under a trailing change")
	}
}

func TestAnalyze_Clear(t *testing.T) {
	a := New(10)
	a.Analyze("some text")
	a.Clear()
	if a.cache.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", a.cache.Len())
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := New(10)
	result := a.Analyze("")
	if result.Tier != Clean {
		t.Errorf("empty text should be CLEAN, got %s", result.Tier)
	}
}

func TestWeightsFor_TiersDistinct(t *testing.T) {
	if WeightsFor(Clean) == WeightsFor(Chaotic) {
		t.Error("clean and chaotic weight presets should differ")
	}
}
