package service

import "github.com/basewrapped/audit-engine/internal/core/domain"

// Grade thresholds, inclusive at the lower bound of each band.
var gradeBands = []struct {
	floor float64
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B+"},
	{60, "B"},
	{50, "C+"},
	{40, "C"},
	{30, "D"},
}

// Tone bands used only as presentation hints.
var toneBands = []struct {
	floor float64
	tone  string
}{
	{80, "strong"},
	{60, "good"},
	{40, "average"},
	{20, "weak"},
}

// GradeFor maps a percentile to its letter grade.
func GradeFor(percentile float64) string {
	for _, b := range gradeBands {
		if percentile >= b.floor {
			return b.grade
		}
	}
	return "F"
}

// ToneFor maps a percentile to its color/tone classification.
func ToneFor(percentile float64) string {
	for _, b := range toneBands {
		if percentile >= b.floor {
			return b.tone
		}
	}
	return "poor"
}

// Classify maps an externally ranked percentile and archetype title to the
// full score result. The percentile is clamped to [0, 100]; the archetype
// passes through untouched (this engine never invents archetypes).
func Classify(percentile float64, archetype string) domain.ScoreResult {
	if percentile < 0 {
		percentile = 0
	}
	if percentile > 100 {
		percentile = 100
	}
	return domain.ScoreResult{
		Score:     percentile,
		Grade:     GradeFor(percentile),
		Tone:      ToneFor(percentile),
		Archetype: archetype,
	}
}
