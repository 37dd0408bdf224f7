package calculator

import (
	"fmt"
	"math"

	"VolSentinel/internal/model"
)

const garchMinReturns = 10

// GARCHEstimator is a GARCH(1,1) conditional-variance estimator with fixed parameters.
type GARCHEstimator struct {
	Params              model.GARCHParams
	AnnualizationFactor float64
}

func (GARCHEstimator) Method() model.Method { return model.MethodGARCH }
func (GARCHEstimator) MinPoints() int       { return 10 }

func (g GARCHEstimator) Validate() error {
	if err := g.Params.Validate(); err != nil {
		return err
	}
	return validateAnnualization(g.AnnualizationFactor)
}

func (g GARCHEstimator) Estimate(returns []float64) (float64, float64, error) {
	variances, residuals, err := GARCHVariance(returns, g.Params)
	if err != nil {
		return 0, 0, err
	}
	if variances == nil {
		// flat prices: no shocks, nothing to fit
		return 0, 100, nil
	}
	last := variances[len(variances)-1]
	dvol := math.Sqrt(last*g.AnnualizationFactor) * 100

	// standardized residuals should look like N(0,1)
	quality := math.Max(0, 100-(math.Abs(Mean(residuals))+math.Abs(sampleStdDev(residuals)-1))*50)
	return dvol, (quality + stabilityScore(variances)) / 2, nil
}

// GARCHVariance seeds var_0 with the sample variance of returns and runs
// var_t = ω + α·r_{t-1}² + β·var_{t-1}, returning the variance path and the
// standardized residuals e_t = r_t / sqrt(var_t) for t >= 1.
// Both slices are nil when every return is exactly 0. Constant non-zero
// returns still run the recursion: var_t >= ω > 0 for t >= 1.
func GARCHVariance(returns []float64, p model.GARCHParams) (variances, residuals []float64, err error) {
	if len(returns) < garchMinReturns {
		return nil, nil, fmt.Errorf("%w: garch needs at least %d returns, got %d", ErrInsufficientData, garchMinReturns, len(returns))
	}
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if allZero(returns) {
		return nil, nil, nil
	}
	unconditional, err := Variance(returns)
	if err != nil {
		return nil, nil, err
	}

	variances = make([]float64, len(returns))
	residuals = make([]float64, 0, len(returns)-1)
	variances[0] = unconditional
	for t := 1; t < len(returns); t++ {
		prev := returns[t-1]
		variances[t] = p.Omega + p.Alpha*prev*prev + p.Beta*variances[t-1]
		residuals = append(residuals, returns[t]/math.Sqrt(variances[t]))
	}
	return variances, residuals, nil
}

func allZero(xs []float64) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}
