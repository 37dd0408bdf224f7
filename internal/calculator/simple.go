package calculator

import (
	"fmt"
	"math"

	"VolSentinel/internal/model"
)

// SimpleEstimator averages rolling-window sample volatilities.
type SimpleEstimator struct {
	WindowSize          int
	AnnualizationFactor float64
}

func (SimpleEstimator) Method() model.Method { return model.MethodSimple }
func (SimpleEstimator) MinPoints() int       { return 2 }

func (s SimpleEstimator) Validate() error {
	if s.WindowSize < 2 {
		return fmt.Errorf("%w: window size must be at least 2, got %d", ErrInvalidParameter, s.WindowSize)
	}
	return validateAnnualization(s.AnnualizationFactor)
}

func (s SimpleEstimator) Estimate(returns []float64) (float64, float64, error) {
	vols, err := RollingVolatility(returns, s.WindowSize)
	if err != nil {
		return 0, 0, err
	}
	dvol := Mean(vols) * math.Sqrt(s.AnnualizationFactor) * 100
	return dvol, stabilityScore(vols), nil
}

// RollingVolatility returns the sample stdev of every trailing window of returns,
// one value per window end from windowSize-1 to len(returns)-1.
func RollingVolatility(returns []float64, windowSize int) ([]float64, error) {
	if windowSize < 2 {
		return nil, fmt.Errorf("%w: window size must be at least 2, got %d", ErrInvalidParameter, windowSize)
	}
	if len(returns) < windowSize {
		return nil, fmt.Errorf("%w: %d returns for a window of %d", ErrInsufficientData, len(returns), windowSize)
	}
	vols := make([]float64, 0, len(returns)-windowSize+1)
	for end := windowSize - 1; end < len(returns); end++ {
		vol, err := StdDev(returns[end-windowSize+1 : end+1])
		if err != nil {
			return nil, err
		}
		vols = append(vols, vol)
	}
	return vols, nil
}
