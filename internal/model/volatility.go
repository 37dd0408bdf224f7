package model

import (
	"fmt"
	"time"
)

// Method tags a DVOL estimator.
type Method string

const (
	MethodSimple Method = "simple"
	MethodEWMA   Method = "ewma"
	MethodGARCH  Method = "garch"
)

// Methods lists every estimator in report order.
var Methods = []Method{MethodSimple, MethodEWMA, MethodGARCH}

// ParseMethod validates an estimator tag.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown method %q", ErrInvalidParameter, s)
}

// VolatilityMetrics is the baseline dispersion bundle of a series.
type VolatilityMetrics struct {
	Volatility           float64 `json:"volatility"`            // percent per period
	Variance             float64 `json:"variance"`              // basis points squared
	AnnualizedVolatility float64 `json:"annualized_volatility"` // percent
}

// DVOLResult is one estimator's realized-volatility reading.
type DVOLResult struct {
	DVOL         float64   `json:"dvol"`       // annualized percent
	DVOLIndex    float64   `json:"dvol_index"` // 0~100
	Confidence   float64   `json:"confidence"` // 0~100
	Method       Method    `json:"method"`
	DataPoints   int       `json:"data_points"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// DiagnosticsResult holds unitless descriptive statistics of a returns series.
type DiagnosticsResult struct {
	Autocorrelation    float64 `json:"autocorrelation"`
	Heteroskedasticity float64 `json:"heteroskedasticity"`
	Skewness           float64 `json:"skewness"`
	Kurtosis           float64 `json:"kurtosis"` // excess
}

// GARCHParams parameterizes a GARCH(1,1) variance recursion.
type GARCHParams struct {
	Omega float64 `json:"omega" yaml:"omega"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Beta  float64 `json:"beta" yaml:"beta"`
}

// Validate enforces omega > 0, alpha >= 0, beta >= 0 and alpha + beta < 1.
func (p GARCHParams) Validate() error {
	if !(p.Omega > 0) {
		return fmt.Errorf("%w: garch omega must be > 0, got %g", ErrInvalidParameter, p.Omega)
	}
	if !(p.Alpha >= 0) {
		return fmt.Errorf("%w: garch alpha must be >= 0, got %g", ErrInvalidParameter, p.Alpha)
	}
	if !(p.Beta >= 0) {
		return fmt.Errorf("%w: garch beta must be >= 0, got %g", ErrInvalidParameter, p.Beta)
	}
	if p.Alpha+p.Beta >= 1 {
		return fmt.Errorf("%w: garch alpha+beta must be < 1, got %g", ErrInvalidParameter, p.Alpha+p.Beta)
	}
	return nil
}
