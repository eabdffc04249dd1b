package chaos

// ConfidenceWeights is a preset table of scoring adjustments applied
// during name-scoring, chosen by the chaos tier of the document being
// scanned.
type ConfidenceWeights struct {
	DictionaryBonus float64
	FuzzyBonus      float64
	PhoneticBonus   float64
	BasePenalty     float64
}

var (
	cleanWeights = ConfidenceWeights{DictionaryBonus: 0.10, FuzzyBonus: 0.05, PhoneticBonus: 0.03, BasePenalty: 0.0}
	noisyWeights = ConfidenceWeights{DictionaryBonus: 0.08, FuzzyBonus: 0.07, PhoneticBonus: 0.05, BasePenalty: 0.02}
	chaosWeights = ConfidenceWeights{DictionaryBonus: 0.05, FuzzyBonus: 0.10, PhoneticBonus: 0.08, BasePenalty: 0.05}
)

// WeightsFor returns the adaptive confidence-weight preset for tier.
// DEGRADED shares the CHAOTIC table: both indicate the fuzzy/phonetic
// cascade should be trusted over exact dictionary hits.
func WeightsFor(tier Tier) ConfidenceWeights {
	switch tier {
	case Clean:
		return cleanWeights
	case Noisy:
		return noisyWeights
	default:
		return chaosWeights
	}
}
