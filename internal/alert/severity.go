package alert

import (
	"math"

	"github.com/Hades1710/ThirdWave/internal/models"
)

// Classify maps a distress score to a severity tier. Total over all float64
// input: out-of-range scores are clamped to [0,100] and NaN is treated as 0.
// Boundaries are inclusive on the lower bound of each tier.
func Classify(score float64) models.Severity {
	if math.IsNaN(score) {
		score = 0
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score >= 90:
		return models.SeverityCritical
	case score >= 80:
		return models.SeverityHigh
	default:
		return models.SeverityElevated
	}
}
