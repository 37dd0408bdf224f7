package model

import (
	"fmt"
	"time"
)

// PricePoint is a single observation handed over by a price provider.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
	Price     float64 `json:"price"`
}

// PriceSeries holds raw price data for analysis.
// Ordering and de-duplication are the provider's responsibility.
type PriceSeries struct {
	Symbol    string
	Period    Period
	Points    []PricePoint
	Source    string
	Synthetic bool // history fabricated from a random walk, not organic prices
	FetchedAt time.Time
}

// Prices returns the price column of the series.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent point, or false if the series is empty.
func (s *PriceSeries) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// NewPriceSeries builds a series from parallel timestamp/price slices.
func NewPriceSeries(symbol string, period Period, timestamps []int64, prices []float64) (*PriceSeries, error) {
	if len(timestamps) != len(prices) {
		return nil, fmt.Errorf("timestamps (%d) and prices (%d) differ in length", len(timestamps), len(prices))
	}
	points := make([]PricePoint, len(prices))
	for i := range prices {
		points[i] = PricePoint{Timestamp: timestamps[i], Price: prices[i]}
	}
	return &PriceSeries{
		Symbol:    symbol,
		Period:    period,
		Points:    points,
		FetchedAt: time.Now(),
	}, nil
}

// FetchResult is the outcome of one provider attempt: either Series or Err is set.
type FetchResult struct {
	Provider string
	Series   *PriceSeries
	Err      error
}

// OK reports whether the attempt produced a series.
func (r FetchResult) OK() bool {
	return r.Err == nil && r.Series != nil
}
