package collector

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"VolSentinel/internal/model"
)

// defaultDailyStep is the daily log-return stdev of the generated walk.
const defaultDailyStep = 0.02

// SyntheticFetcher fabricates history for providers that only expose a live quote.
// It walks backwards from the current price with normally distributed log steps;
// a zero Seed draws a fresh walk on every call.
// Every series it returns is flagged Synthetic: the readings computed on it carry
// no market meaning.
type SyntheticFetcher struct {
	Quote     Fetcher
	Seed      uint64
	DailyStep float64
	Now       func() time.Time
}

// NewSyntheticFetcher anchors a random walk to quotes from the given fetcher.
func NewSyntheticFetcher(quote Fetcher, seed uint64) *SyntheticFetcher {
	return &SyntheticFetcher{Quote: quote, Seed: seed, DailyStep: defaultDailyStep, Now: time.Now}
}

func (f *SyntheticFetcher) Name() string { return "synthetic(" + f.Quote.Name() + ")" }

func (f *SyntheticFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	return f.Quote.FetchCurrentPrice(ctx, symbol)
}

func (f *SyntheticFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) (*model.PriceSeries, error) {
	anchor, err := f.Quote.FetchCurrentPrice(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch anchor quote: %w", err)
	}
	if !(anchor > 0) || math.IsInf(anchor, 0) {
		return nil, fmt.Errorf("anchor quote %g is not a positive price", anchor)
	}

	series := newSeries(symbol, period, f.Name(), f.walk(anchor, periodCadence(period)))
	series.Synthetic = true
	return series, nil
}

func (f *SyntheticFetcher) walk(anchor float64, c cadence) []model.PricePoint {
	now := f.Now()
	seed := f.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	step := f.DailyStep * math.Sqrt(c.Step.Hours()/24)

	points := make([]model.PricePoint, c.Points)
	price := anchor
	for i := c.Points - 1; i >= 0; i-- {
		points[i] = model.PricePoint{
			Timestamp: now.Add(-time.Duration(c.Points-1-i) * c.Step).UnixMilli(),
			Price:     price,
		}
		price /= math.Exp(step * rng.NormFloat64())
	}
	return points
}
