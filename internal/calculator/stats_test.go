package calculator

import (
	"errors"
	"math"
	"testing"

	"VolSentinel/internal/model"
)

func TestMeanVarianceStdDev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if m := Mean(xs); m != 5 {
		t.Errorf("expected mean 5, got %v", m)
	}
	v, err := Variance(xs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(v-32.0/7.0) > 1e-12 {
		t.Errorf("expected sample variance %v, got %v", 32.0/7.0, v)
	}
	sd, _ := StdDev(xs)
	if math.Abs(sd-math.Sqrt(32.0/7.0)) > 1e-12 {
		t.Errorf("expected stdev %v, got %v", math.Sqrt(32.0/7.0), sd)
	}
	if Mean(nil) != 0 {
		t.Error("expected mean of empty slice to be 0")
	}
	if _, err := Variance([]float64{1}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAnnualize(t *testing.T) {
	got, err := Annualize(0.01, 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.01*math.Sqrt(365)) > 1e-15 {
		t.Errorf("expected %v, got %v", 0.01*math.Sqrt(365), got)
	}
	for _, ppy := range []float64{0, -1, math.NaN()} {
		if _, err := Annualize(0.01, ppy); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("periodsPerYear=%v: expected ErrInvalidParameter, got %v", ppy, err)
		}
	}
}

func TestPeriodsPerYear(t *testing.T) {
	tests := []struct {
		period model.Period
		n      int
		want   float64
	}{
		{model.Period1D, 24, 8760},
		{model.Period30D, 30, 365},
		{model.Period365D, 365, 365},
		{model.Period7D, 10, 120},
		{model.Period90D, 90, 365},
		{"weird", 3, 36},
	}
	for _, tt := range tests {
		if got := PeriodsPerYear(tt.period, tt.n); got != tt.want {
			t.Errorf("PeriodsPerYear(%q, %d) = %v, expected %v", tt.period, tt.n, got, tt.want)
		}
	}
}

func TestCalculateMetrics(t *testing.T) {
	prices := wavePrices(31)
	m, err := CalculateMetrics(seriesOf(prices...), model.Period30D)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	returns, _ := LogReturns(prices)
	v, _ := Variance(returns)
	sd := math.Sqrt(v)
	if math.Abs(m.Volatility-sd*100) > 1e-12 {
		t.Errorf("volatility: expected %v, got %v", sd*100, m.Volatility)
	}
	if math.Abs(m.Variance-v*10000) > 1e-12 {
		t.Errorf("variance: expected %v, got %v", v*10000, m.Variance)
	}
	if math.Abs(m.AnnualizedVolatility-sd*math.Sqrt(365)*100) > 1e-9 {
		t.Errorf("annualized: expected %v, got %v", sd*math.Sqrt(365)*100, m.AnnualizedVolatility)
	}
}

func TestCalculateMetrics_ConstantPrices(t *testing.T) {
	m, err := CalculateMetrics(seriesOf(constantPrices(10, 50)...), model.Period1D)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Volatility != 0 || m.Variance != 0 || m.AnnualizedVolatility != 0 {
		t.Errorf("expected all-zero metrics, got %+v", m)
	}
}

func TestCalculateMetrics_TwoPoints(t *testing.T) {
	m, err := CalculateMetrics(seriesOf(100, 101), model.Period30D)
	if err != nil {
		t.Fatalf("two-point series should be accepted: %v", err)
	}
	if m.Volatility != 0 || m.Variance != 0 || m.AnnualizedVolatility != 0 {
		t.Errorf("single return has no spread, got %+v", m)
	}
}

func TestCalculateMetrics_Errors(t *testing.T) {
	if _, err := CalculateMetrics(seriesOf(100), model.Period30D); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := CalculateMetrics(seriesOf(100, -5, 100), model.Period30D); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}
