package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"VolSentinel/internal/calculator"
	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
	"VolSentinel/internal/regime"
)

// Collector orchestrates data fetching and volatility computation.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Period  model.Period
	Methods []model.Method
	Options calculator.Options
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, period model.Period, methods []model.Method, opts calculator.Options) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Period: period, Methods: methods, Options: opts}
}

// Collect fetches the configured symbol's history and builds a report.
func (c *Collector) Collect(ctx context.Context) (*model.VolatilityReport, error) {
	return c.CollectFor(ctx, c.Symbol, c.Period)
}

// CollectFor fetches history for an arbitrary symbol and period.
func (c *Collector) CollectFor(ctx context.Context, symbol string, period model.Period) (*model.VolatilityReport, error) {
	series, err := c.Fetcher.FetchHistory(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return c.Analyze(series)
}

// Analyze runs every calculator stage over an already fetched series.
// Estimator failures are logged and recorded as warnings; a series the
// calculator rejects outright is an error.
func (c *Collector) Analyze(series *model.PriceSeries) (*model.VolatilityReport, error) {
	metrics, err := calculator.CalculateMetrics(series, series.Period)
	if err != nil {
		return nil, fmt.Errorf("compute metrics for %s: %w", series.Symbol, err)
	}

	report := &model.VolatilityReport{
		ID:          uuid.NewString(),
		Symbol:      series.Symbol,
		Period:      series.Period,
		Source:      series.Source,
		Synthetic:   series.Synthetic,
		DataPoints:  len(series.Points),
		Metrics:     metrics,
		GeneratedAt: time.Now(),
	}
	if last, ok := series.Last(); ok {
		report.LastPrice = last.Price
	}

	for _, m := range c.Methods {
		res, err := calculator.CalculateDVOL(series, m, c.Options)
		if err != nil {
			logger.Warn("%s DVOL failed for %s/%s: %v", m, series.Symbol, series.Period, err)
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %v", m, err))
			continue
		}
		report.Results = append(report.Results, *res)
	}

	if diag, err := calculator.CalculateDiagnostics(series); err != nil {
		logger.Warn("diagnostics failed for %s/%s: %v", series.Symbol, series.Period, err)
	} else {
		report.Diagnostics = diag
	}

	regime.Evaluate(report)
	logger.Debug("report %s: %s/%s %d points, regime %s", report.ID, report.Symbol, report.Period, report.DataPoints, report.Regime.Label)
	return report, nil
}
