package utils

import (
	"math"
)

// =============================================================================
// Score Utilities
// =============================================================================

// RoundScore rounds a score to 4 decimal places
func RoundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// Clamp01 clamps a score to the [0.0, 1.0] range
func Clamp01(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
