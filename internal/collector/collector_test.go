package collector

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"VolSentinel/internal/calculator"
	"VolSentinel/internal/model"
)

// staticFetcher returns controllable fixed data.
type staticFetcher struct {
	name   string
	prices []float64
	quote  float64
	err    error
}

func (s *staticFetcher) Name() string { return s.name }

func (s *staticFetcher) FetchHistory(_ context.Context, symbol string, period model.Period) (*model.PriceSeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	points := make([]model.PricePoint, len(s.prices))
	for i, p := range s.prices {
		points[i] = model.PricePoint{Timestamp: int64(i) * 86_400_000, Price: p}
	}
	return newSeries(symbol, period, s.name, points), nil
}

func (s *staticFetcher) FetchCurrentPrice(_ context.Context, _ string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.quote, nil
}

func wave(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 * math.Exp(0.03*math.Sin(float64(i)*1.3))
	}
	return prices
}

func TestCollect_FullReport(t *testing.T) {
	f := &staticFetcher{name: "static", prices: wave(60)}
	c := NewCollector(f, "BTC-USD", model.Period30D, model.Methods, calculator.DefaultOptions())

	report, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if report.ID == "" {
		t.Error("expected a report ID")
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 DVOL results, got %d (warnings %v)", len(report.Results), report.Warnings)
	}
	if report.Metrics == nil || report.Diagnostics == nil {
		t.Fatal("expected metrics and diagnostics")
	}
	if report.DataPoints != 60 || report.Source != "static" {
		t.Errorf("unexpected report header: %+v", report)
	}
	if report.LastPrice != f.prices[59] {
		t.Errorf("expected last price %v, got %v", f.prices[59], report.LastPrice)
	}
	if report.Regime.Label == "" || report.Regime.Label == "unknown" {
		t.Errorf("expected a classified regime, got %q", report.Regime.Label)
	}
}

func TestCollect_ShortSeriesKeepsWorkingEstimators(t *testing.T) {
	// 8 prices: simple (window 30) and garch fail, ewma succeeds
	f := &staticFetcher{name: "static", prices: wave(8)}
	c := NewCollector(f, "ETH-USD", model.Period7D, model.Methods, calculator.DefaultOptions())

	report, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Method != model.MethodEWMA {
		t.Fatalf("expected only the ewma result, got %+v", report.Results)
	}
	if len(report.Warnings) < 2 {
		t.Errorf("expected warnings for simple and garch, got %v", report.Warnings)
	}
}

func TestCollect_Errors(t *testing.T) {
	fetchErr := errors.New("boom")
	c := NewCollector(&staticFetcher{name: "broken", err: fetchErr}, "X", model.Period30D, model.Methods, calculator.DefaultOptions())
	if _, err := c.Collect(context.Background()); !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error to be wrapped, got %v", err)
	}

	c = NewCollector(&staticFetcher{name: "bad", prices: []float64{100, -1, 100}}, "X", model.Period30D, model.Methods, calculator.DefaultOptions())
	if _, err := c.Collect(context.Background()); !errors.Is(err, calculator.ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestSyntheticFetcher(t *testing.T) {
	quote := &staticFetcher{name: "quote", quote: 2500}
	f := NewSyntheticFetcher(quote, 42)

	s1, err := f.FetchHistory(context.Background(), "ETH-USD", model.Period30D)
	if err != nil {
		t.Fatalf("FetchHistory failed: %v", err)
	}
	if !s1.Synthetic {
		t.Error("synthetic series must be flagged")
	}
	if len(s1.Points) != 31 {
		t.Fatalf("expected 31 daily points, got %d", len(s1.Points))
	}
	last, _ := s1.Last()
	if last.Price != 2500 {
		t.Errorf("walk must end at the anchor quote, got %v", last.Price)
	}
	for i := 1; i < len(s1.Points); i++ {
		if s1.Points[i].Timestamp <= s1.Points[i-1].Timestamp {
			t.Fatalf("timestamps not increasing at %d", i)
		}
	}
	if !strings.HasPrefix(f.Name(), "synthetic(") {
		t.Errorf("unexpected name %q", f.Name())
	}

	s2, _ := f.FetchHistory(context.Background(), "ETH-USD", model.Period30D)
	for i := range s1.Points {
		if s1.Points[i].Price != s2.Points[i].Price {
			t.Fatalf("same seed should reproduce the walk, differs at %d", i)
		}
	}

	if _, err := NewSyntheticFetcher(&staticFetcher{name: "zero"}, 1).FetchHistory(context.Background(), "X", model.Period1D); err == nil {
		t.Error("expected error for a zero anchor quote")
	}
}

func TestCollect_DefaultPeriodFillsSimpleWindow(t *testing.T) {
	f := NewSyntheticFetcher(&staticFetcher{name: "quote", quote: 65000}, 7)
	c := NewCollector(f, "BTC-USD", model.DefaultPeriod, model.Methods, calculator.DefaultOptions())

	report, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if _, ok := report.Result(model.MethodSimple); !ok {
		t.Errorf("simple estimator should succeed on a default %s series, warnings %v", model.DefaultPeriod, report.Warnings)
	}
	if len(report.Results) != len(model.Methods) {
		t.Errorf("expected every method to succeed, got %d results", len(report.Results))
	}
}

func TestFallbackFetcher(t *testing.T) {
	down := &staticFetcher{name: "down", err: errors.New("503")}
	short := &staticFetcher{name: "short", prices: []float64{100}}
	ok := &staticFetcher{name: "ok", prices: wave(10)}
	never := &staticFetcher{name: "never", prices: wave(10)}

	f := NewFallbackFetcher(down, short, ok, never)
	results := f.FetchWithResults(context.Background(), "BTC", model.Period30D)
	if len(results) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(results))
	}
	if results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Errorf("unexpected attempt outcomes: %+v", results)
	}
	if !errors.Is(results[1].Err, model.ErrInsufficientData) {
		t.Errorf("short series should be tagged insufficient, got %v", results[1].Err)
	}

	series, err := f.FetchHistory(context.Background(), "BTC", model.Period30D)
	if err != nil || series.Source != "ok" {
		t.Errorf("expected series from ok provider, got %v, %v", series, err)
	}

	_, err = NewFallbackFetcher(down).FetchHistory(context.Background(), "BTC", model.Period30D)
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Errorf("expected aggregated provider error, got %v", err)
	}
	if f.Name() != "fallback(down,short,ok,never)" {
		t.Errorf("unexpected name %q", f.Name())
	}
}
