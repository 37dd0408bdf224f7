package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"VolSentinel/internal/model"
)

const binanceBaseURL = "https://api.binance.com"

// BinanceFetcher implements Fetcher using Binance public kline and ticker endpoints.
// Binance quotes prices as decimal strings; they are parsed exactly before
// conversion to float64.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher; an empty baseURL selects the public API.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = binanceBaseURL
	}
	return &BinanceFetcher{BaseURL: strings.TrimRight(baseURL, "/"), Client: newHTTPClient(proxyURL)}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceSymbol turns "BTC-USD" style tickers into Binance pairs like "BTCUSDT".
func binanceSymbol(symbol string) string {
	s := strings.ToUpper(strings.ReplaceAll(symbol, "-", ""))
	if strings.HasSuffix(s, "USD") {
		s += "T"
	}
	return s
}

func binanceInterval(p model.Period) (interval string, limit int) {
	c := periodCadence(p)
	if c.Step < 24*time.Hour {
		return "1h", c.Points
	}
	return "1d", c.Points
}

func (f *BinanceFetcher) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("binance decode: %w", err)
	}
	return nil
}

func (f *BinanceFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) (*model.PriceSeries, error) {
	interval, limit := binanceInterval(period)
	q := url.Values{}
	q.Set("symbol", binanceSymbol(symbol))
	q.Set("interval", interval)
	q.Set("limit", fmt.Sprint(limit))

	// each kline: [openTime, open, high, low, close, volume, closeTime, ...]
	var klines [][]interface{}
	if err := f.get(ctx, f.BaseURL+"/api/v3/klines?"+q.Encode(), &klines); err != nil {
		return nil, err
	}

	points := make([]model.PricePoint, 0, len(klines))
	for i, k := range klines {
		if len(k) < 5 {
			return nil, fmt.Errorf("binance: kline %d has %d fields", i, len(k))
		}
		openTime, ok := k[0].(float64)
		if !ok {
			return nil, fmt.Errorf("binance: kline %d open time is %T", i, k[0])
		}
		closeStr, ok := k[4].(string)
		if !ok {
			return nil, fmt.Errorf("binance: kline %d close is %T", i, k[4])
		}
		price, err := parsePrice(closeStr)
		if err != nil {
			return nil, fmt.Errorf("binance: kline %d: %w", i, err)
		}
		points = append(points, model.PricePoint{Timestamp: int64(openTime), Price: price})
	}
	return newSeries(symbol, period, f.Name(), points), nil
}

func (f *BinanceFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", f.BaseURL, url.QueryEscape(binanceSymbol(symbol)))
	if err := f.get(ctx, endpoint, &ticker); err != nil {
		return 0, err
	}
	return parsePrice(ticker.Price)
}

func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}
