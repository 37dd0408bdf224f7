package calculator

import (
	"fmt"
	"math"

	"VolSentinel/internal/model"
)

// confidenceTail is how many trailing EWMA variances feed the stability score.
const confidenceTail = 10

// EWMAEstimator is the exponentially weighted moving average variance estimator.
type EWMAEstimator struct {
	Lambda              float64
	AnnualizationFactor float64
}

func (EWMAEstimator) Method() model.Method { return model.MethodEWMA }
func (EWMAEstimator) MinPoints() int       { return 5 }

func (e EWMAEstimator) Validate() error {
	if !(e.Lambda > 0 && e.Lambda < 1) {
		return fmt.Errorf("%w: ewma lambda must be in (0,1), got %g", ErrInvalidParameter, e.Lambda)
	}
	return validateAnnualization(e.AnnualizationFactor)
}

func (e EWMAEstimator) Estimate(returns []float64) (float64, float64, error) {
	variances, err := EWMAVariance(returns, e.Lambda)
	if err != nil {
		return 0, 0, err
	}
	last := variances[len(variances)-1]
	dvol := math.Sqrt(last*e.AnnualizationFactor) * 100

	tail := variances[len(variances)-min(confidenceTail, len(variances)):]
	return dvol, stabilityScore(tail), nil
}

// EWMAVariance runs var_0 = r_0², var_t = λ·var_{t-1} + (1-λ)·r_t².
func EWMAVariance(returns []float64, lambda float64) ([]float64, error) {
	if len(returns) < 2 {
		return nil, fmt.Errorf("%w: ewma needs at least 2 returns, got %d", ErrInsufficientData, len(returns))
	}
	variances := make([]float64, len(returns))
	variances[0] = returns[0] * returns[0]
	for t := 1; t < len(returns); t++ {
		variances[t] = lambda*variances[t-1] + (1-lambda)*returns[t]*returns[t]
	}
	return variances, nil
}
