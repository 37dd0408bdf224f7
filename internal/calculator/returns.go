package calculator

import (
	"fmt"
	"math"

	"VolSentinel/internal/model"
)

// LogReturns converts prices into log returns, r_i = ln(p_i / p_{i-1}).
// The result always has len(prices)-1 elements.
func LogReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices for returns, got %d", ErrInsufficientData, len(prices))
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns, nil
}

// SeriesReturns computes log returns over the price column of a series.
func SeriesReturns(series *model.PriceSeries) ([]float64, error) {
	if series == nil {
		return nil, fmt.Errorf("%w: nil series", ErrInsufficientData)
	}
	return LogReturns(series.Prices())
}

func validatePrices(prices []float64) error {
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return fmt.Errorf("%w: price[%d] = %g", ErrInvalidPrice, i, p)
		}
	}
	return nil
}
