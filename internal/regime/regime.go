package regime

import (
	"fmt"

	"VolSentinel/internal/model"
)

// Tiers defines the volatility regime bands over the DVOL index, highest first.
var Tiers = []model.Regime{
	{Label: "extreme", MinIndex: 75, Alert: true},
	{Label: "high", MinIndex: 50, Alert: true},
	{Label: "elevated", MinIndex: 30},
	{Label: "normal", MinIndex: 10},
}

// DefaultTier is the lowest band for indices below 10.
var DefaultTier = model.Regime{Label: "calm", MinIndex: 0}

// Unknown marks a report without any successful DVOL reading.
var Unknown = model.Regime{Label: "unknown", MinIndex: -1}

const (
	lowConfidence     = 50.0
	clusteringWarning = 0.3
	fatTailWarning    = 3.0
)

// Classify maps a DVOL index onto a regime tier.
func Classify(index float64) model.Regime {
	for _, t := range Tiers {
		if index >= t.MinIndex {
			return t
		}
	}
	return DefaultTier
}

// Evaluate sets the report's regime from its primary reading and appends
// interpretation warnings.
func Evaluate(r *model.VolatilityReport) {
	primary, ok := r.Primary()
	if !ok {
		r.Regime = Unknown
		r.Warnings = append(r.Warnings, "no DVOL estimator succeeded")
		return
	}
	r.Regime = Classify(primary.DVOLIndex)

	if r.Synthetic {
		r.Warnings = append(r.Warnings, "synthetic price history: readings carry no market meaning")
	}
	if primary.Confidence < lowConfidence {
		r.Warnings = append(r.Warnings, fmt.Sprintf("low confidence %.0f on %s estimate", primary.Confidence, primary.Method))
	}
	if d := r.Diagnostics; d != nil {
		if d.Heteroskedasticity > clusteringWarning {
			r.Warnings = append(r.Warnings, fmt.Sprintf("volatility clustering (ARCH proxy %.2f)", d.Heteroskedasticity))
		}
		if d.Kurtosis > fatTailWarning {
			r.Warnings = append(r.Warnings, fmt.Sprintf("fat tails (excess kurtosis %.2f)", d.Kurtosis))
		}
	}
}
