package calculator

import (
	"fmt"
	"math"
	"time"

	"VolSentinel/internal/model"
)

const (
	DefaultWindowSize          = 30
	DefaultLambda              = 0.94
	DefaultAnnualizationFactor = 365.0

	// The index assumes realistic DVOL readings between 10% and 200%.
	dvolIndexFloor   = 10.0
	dvolIndexCeiling = 200.0
)

// DefaultGARCHParams are the GARCH(1,1) parameters used when none are configured.
var DefaultGARCHParams = model.GARCHParams{Omega: 1e-6, Alpha: 0.1, Beta: 0.85}

// Options carries every tunable of the three estimators.
type Options struct {
	WindowSize          int
	Lambda              float64
	GARCH               model.GARCHParams
	AnnualizationFactor float64
}

// DefaultOptions returns window 30, lambda 0.94, GARCH {1e-6, 0.1, 0.85} and 365 periods per year.
func DefaultOptions() Options {
	return Options{
		WindowSize:          DefaultWindowSize,
		Lambda:              DefaultLambda,
		GARCH:               DefaultGARCHParams,
		AnnualizationFactor: DefaultAnnualizationFactor,
	}
}

// Estimator resolves the estimator for a method tag.
func (o Options) Estimator(m model.Method) (Estimator, error) {
	switch m {
	case model.MethodSimple:
		return SimpleEstimator{WindowSize: o.WindowSize, AnnualizationFactor: o.AnnualizationFactor}, nil
	case model.MethodEWMA:
		return EWMAEstimator{Lambda: o.Lambda, AnnualizationFactor: o.AnnualizationFactor}, nil
	case model.MethodGARCH:
		return GARCHEstimator{Params: o.GARCH, AnnualizationFactor: o.AnnualizationFactor}, nil
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidParameter, m)
	}
}

// Estimator is one DVOL algorithm together with its parameters.
type Estimator interface {
	Method() model.Method
	// MinPoints is the minimum number of prices the method accepts.
	MinPoints() int
	Validate() error
	// Estimate returns the annualized DVOL in percent and an unclamped confidence score.
	Estimate(returns []float64) (dvol, confidence float64, err error)
}

// CalculateDVOL estimates DVOL for a series with the given method and options.
func CalculateDVOL(series *model.PriceSeries, method model.Method, opts Options) (*model.DVOLResult, error) {
	est, err := opts.Estimator(method)
	if err != nil {
		return nil, err
	}
	return CalculateDVOLWith(series, est)
}

// CalculateDVOLWith validates the series, runs the estimator and normalizes the result.
func CalculateDVOLWith(series *model.PriceSeries, est Estimator) (*model.DVOLResult, error) {
	if series == nil || len(series.Points) == 0 {
		return nil, fmt.Errorf("%w: empty price series", ErrInsufficientData)
	}
	n := len(series.Points)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInsufficientData, n)
	}
	if n < est.MinPoints() {
		return nil, fmt.Errorf("%w: %s needs at least %d prices, got %d", ErrInsufficientData, est.Method(), est.MinPoints(), n)
	}
	prices := series.Prices()
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	if err := est.Validate(); err != nil {
		return nil, err
	}

	returns, err := LogReturns(prices)
	if err != nil {
		return nil, err
	}
	dvol, confidence, err := est.Estimate(returns)
	if err != nil {
		return nil, err
	}

	return &model.DVOLResult{
		DVOL:         dvol,
		DVOLIndex:    DVOLIndex(dvol),
		Confidence:   clamp(confidence, 0, 100),
		Method:       est.Method(),
		DataPoints:   n,
		CalculatedAt: time.Now(),
	}, nil
}

// DVOLIndex maps a DVOL percentage onto 0~100 over the 10%~200% range.
func DVOLIndex(dvol float64) float64 {
	return clamp((dvol-dvolIndexFloor)/(dvolIndexCeiling-dvolIndexFloor)*100, 0, 100)
}

// stabilityScore is 100 minus the coefficient of variation in percent, clamped to 0~100.
// A zero mean counts as perfectly stable. Heuristic, not a statistical test.
func stabilityScore(xs []float64) float64 {
	m := Mean(xs)
	ratio := 0.0
	if m != 0 {
		ratio = sampleStdDev(xs) / m
	}
	return clamp(100-ratio*100, 0, 100)
}

func validateAnnualization(af float64) error {
	if !(af > 0) || math.IsInf(af, 0) {
		return fmt.Errorf("%w: annualization factor must be positive, got %g", ErrInvalidParameter, af)
	}
	return nil
}
