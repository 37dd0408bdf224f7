package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"VolSentinel/internal/model"
)

// Fetcher defines the interface for fetching price history.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, period model.Period) (*model.PriceSeries, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}

// newHTTPClient builds the shared client shape with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// cadence describes how many points a period spans and how far apart they are.
type cadence struct {
	Points int
	Step   time.Duration
}

// periodCadence assumes hourly sampling up to a week and daily sampling beyond.
// Points covers the whole span plus the opening price, so a 30d series yields
// 30 daily returns and fills the default rolling window.
func periodCadence(p model.Period) cadence {
	switch p {
	case model.Period1D:
		return cadence{Points: 24 + 1, Step: time.Hour}
	case model.Period7D:
		return cadence{Points: 168 + 1, Step: time.Hour}
	case model.Period90D:
		return cadence{Points: 90 + 1, Step: 24 * time.Hour}
	case model.Period365D:
		return cadence{Points: 365 + 1, Step: 24 * time.Hour}
	default:
		return cadence{Points: 30 + 1, Step: 24 * time.Hour}
	}
}

// lastPoints keeps the most recent n points of a chronological slice.
func lastPoints(points []model.PricePoint, n int) []model.PricePoint {
	if len(points) > n {
		return points[len(points)-n:]
	}
	return points
}

func newSeries(symbol string, period model.Period, source string, points []model.PricePoint) *model.PriceSeries {
	return &model.PriceSeries{
		Symbol:    symbol,
		Period:    period,
		Points:    points,
		Source:    source,
		FetchedAt: time.Now(),
	}
}
