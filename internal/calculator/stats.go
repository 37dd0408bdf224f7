package calculator

import (
	"fmt"
	"math"

	"VolSentinel/internal/model"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance returns the sample variance (divisor n-1).
func Variance(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: sample variance needs at least 2 values, got %d", ErrInsufficientData, len(xs))
	}
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs)-1), nil
}

// StdDev returns the sample standard deviation.
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Annualize scales a per-period volatility by sqrt(periodsPerYear).
func Annualize(vol, periodsPerYear float64) (float64, error) {
	if !(periodsPerYear > 0) || math.IsInf(periodsPerYear, 0) {
		return 0, fmt.Errorf("%w: periods per year must be positive, got %g", ErrInvalidParameter, periodsPerYear)
	}
	return vol * math.Sqrt(periodsPerYear), nil
}

// PeriodsPerYear infers the sampling cadence of a period label.
// 1d series are hourly, 30d and 365d series are daily; anything else
// falls back to min(365, nPoints*12).
func PeriodsPerYear(period model.Period, nPoints int) float64 {
	switch period {
	case model.Period1D:
		return 8760
	case model.Period30D, model.Period365D:
		return 365
	default:
		return math.Min(365, float64(nPoints*12))
	}
}

// CalculateMetrics computes volatility (%), variance (bp²) and annualized volatility (%).
// A two-price series has a single return and reports zero variance rather than ErrInsufficientData.
func CalculateMetrics(series *model.PriceSeries, period model.Period) (*model.VolatilityMetrics, error) {
	returns, err := SeriesReturns(series)
	if err != nil {
		return nil, err
	}
	variance, err := Variance(returns)
	if err != nil {
		// a single return has no sample variance; treat it as flat
		if len(returns) != 1 {
			return nil, err
		}
		variance = 0
	}
	stdev := math.Sqrt(variance)
	annualized, err := Annualize(stdev, PeriodsPerYear(period, len(returns)))
	if err != nil {
		return nil, err
	}
	return &model.VolatilityMetrics{
		Volatility:           stdev * 100,
		Variance:             variance * 10000,
		AnnualizedVolatility: annualized * 100,
	}, nil
}

// sampleStdDev is StdDev without the error: fewer than two values have zero spread.
func sampleStdDev(xs []float64) float64 {
	sd, err := StdDev(xs)
	if err != nil {
		return 0
	}
	return sd
}

// populationStdDev uses divisor n.
func populationStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
