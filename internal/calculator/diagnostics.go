package calculator

import (
	"VolSentinel/internal/model"
)

// Autocorrelation at the given lag. The numerator sums the n-lag cross products
// while the denominator sums squared deviations over the whole series; keep the
// two ranges as they are, downstream readings depend on this estimator.
// A zero denominator yields 0.
func Autocorrelation(returns []float64, lag int) float64 {
	n := len(returns)
	if n == 0 || lag < 0 {
		return 0
	}
	m := Mean(returns)
	var num, den float64
	for i := 0; i < n-lag; i++ {
		num += (returns[i] - m) * (returns[i+lag] - m)
	}
	for _, r := range returns {
		d := r - m
		den += d * d
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Heteroskedasticity is the lag-1 autocorrelation of squared returns, a proxy for ARCH effects.
func Heteroskedasticity(returns []float64) float64 {
	squared := make([]float64, len(returns))
	for i, r := range returns {
		squared[i] = r * r
	}
	return Autocorrelation(squared, 1)
}

// Skewness is the population third standardized moment; 0 for a flat series.
func Skewness(returns []float64) float64 {
	return standardizedMoment(returns, 3)
}

// Kurtosis is the population excess kurtosis; 0 for a flat series.
func Kurtosis(returns []float64) float64 {
	sd := populationStdDev(returns)
	if sd == 0 {
		return 0
	}
	return standardizedMomentWith(returns, 4, sd) - 3
}

func standardizedMoment(xs []float64, order int) float64 {
	sd := populationStdDev(xs)
	if sd == 0 {
		return 0
	}
	return standardizedMomentWith(xs, order, sd)
}

// standardizedMomentWith expects sd > 0.
func standardizedMomentWith(xs []float64, order int, sd float64) float64 {
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		z := (x - m) / sd
		p := 1.0
		for k := 0; k < order; k++ {
			p *= z
		}
		sum += p
	}
	return sum / float64(len(xs))
}

// CalculateDiagnostics runs every diagnostic over the full returns series.
func CalculateDiagnostics(series *model.PriceSeries) (*model.DiagnosticsResult, error) {
	returns, err := SeriesReturns(series)
	if err != nil {
		return nil, err
	}
	return &model.DiagnosticsResult{
		Autocorrelation:    Autocorrelation(returns, 1),
		Heteroskedasticity: Heteroskedasticity(returns),
		Skewness:           Skewness(returns),
		Kurtosis:           Kurtosis(returns),
	}, nil
}
