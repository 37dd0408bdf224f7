package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
)

// FallbackFetcher tries each fetcher in order until one succeeds.
type FallbackFetcher struct {
	Fetchers []Fetcher
}

// NewFallbackFetcher chains fetchers in priority order.
func NewFallbackFetcher(fetchers ...Fetcher) *FallbackFetcher {
	return &FallbackFetcher{Fetchers: fetchers}
}

func (f *FallbackFetcher) Name() string {
	names := make([]string, len(f.Fetchers))
	for i, fe := range f.Fetchers {
		names[i] = fe.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

// FetchWithResults records every attempt up to and including the first success.
func (f *FallbackFetcher) FetchWithResults(ctx context.Context, symbol string, period model.Period) []model.FetchResult {
	results := make([]model.FetchResult, 0, len(f.Fetchers))
	for _, fe := range f.Fetchers {
		series, err := fe.FetchHistory(ctx, symbol, period)
		if err == nil && (series == nil || len(series.Points) < 2) {
			err = fmt.Errorf("%w: %s returned too few points", model.ErrInsufficientData, fe.Name())
		}
		res := model.FetchResult{Provider: fe.Name(), Series: series, Err: err}
		results = append(results, res)
		if res.OK() {
			break
		}
		logger.Warn("provider %s failed for %s/%s: %v", fe.Name(), symbol, period, err)
		if ctx.Err() != nil {
			break
		}
	}
	return results
}

func (f *FallbackFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) (*model.PriceSeries, error) {
	results := f.FetchWithResults(ctx, symbol, period)
	errs := make([]error, 0, len(results))
	for _, r := range results {
		if r.OK() {
			return r.Series, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", r.Provider, r.Err))
	}
	if len(errs) == 0 {
		return nil, errors.New("no providers configured")
	}
	return nil, fmt.Errorf("all providers failed: %w", errors.Join(errs...))
}

func (f *FallbackFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var errs []error
	for _, fe := range f.Fetchers {
		price, err := fe.FetchCurrentPrice(ctx, symbol)
		if err == nil {
			return price, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", fe.Name(), err))
	}
	if len(errs) == 0 {
		return 0, errors.New("no providers configured")
	}
	return 0, fmt.Errorf("all providers failed: %w", errors.Join(errs...))
}
