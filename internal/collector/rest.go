package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"VolSentinel/internal/model"
)

// RESTFetcher implements Fetcher against a generic price-history REST API:
//
//	GET {base}/api/v1/prices?symbol=X&period=30d -> [{"timestamp": ms, "price": p}, ...]
//	GET {base}/api/v1/quote?symbol=X             -> {"price": p}
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restPoint is the expected JSON shape of one history entry.
type restPoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

func (f *RESTFetcher) do(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("rest fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rest fetch: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest decode: %w", err)
	}
	return nil
}

func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/api/v1/prices?symbol=%s&period=%s", f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(string(period)))
	var raw []restPoint
	if err := f.do(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	points := make([]model.PricePoint, len(raw))
	for i, rp := range raw {
		points[i] = model.PricePoint{Timestamp: rp.Timestamp, Price: rp.Price}
	}
	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	return newSeries(symbol, period, f.Name(), points), nil
}

func (f *RESTFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var result struct {
		Price float64 `json:"price"`
	}
	if err := f.do(ctx, endpoint, &result); err != nil {
		return 0, fmt.Errorf("fetch current price: %w", err)
	}
	return result.Price, nil
}
