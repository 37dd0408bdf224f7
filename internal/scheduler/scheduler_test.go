package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"VolSentinel/internal/calculator"
	"VolSentinel/internal/collector"
	"VolSentinel/internal/model"
	"VolSentinel/internal/recorder"
	"VolSentinel/internal/tracker"
)

type fakeFetcher struct {
	prices []float64
	err    error
	calls  []string
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) FetchHistory(_ context.Context, symbol string, period model.Period) (*model.PriceSeries, error) {
	f.calls = append(f.calls, symbol+"/"+string(period))
	if f.err != nil {
		return nil, f.err
	}
	ts := make([]int64, len(f.prices))
	for i := range ts {
		ts[i] = int64(i) * 86_400_000
	}
	s, err := model.NewPriceSeries(symbol, period, ts, f.prices)
	if err != nil {
		return nil, err
	}
	s.Source = f.Name()
	return s, nil
}

func (f *fakeFetcher) FetchCurrentPrice(_ context.Context, _ string) (float64, error) {
	return f.prices[len(f.prices)-1], f.err
}

type fakeSender struct {
	sent []string
}

func (f *fakeSender) Send(text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	return f.Send(text)
}

type memRecorder struct {
	reports []*model.VolatilityReport
}

func (m *memRecorder) RecordReport(_ context.Context, r *model.VolatilityReport) error {
	m.reports = append(m.reports, r)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func (m *memRecorder) History(_ context.Context, symbol string, method model.Method, limit int) ([]recorder.HistoryPoint, error) {
	var points []recorder.HistoryPoint
	for i := len(m.reports) - 1; i >= 0 && len(points) < limit; i-- {
		r := m.reports[i]
		if res, ok := r.Result(method); ok && r.Symbol == symbol {
			points = append(points, recorder.HistoryPoint{ReportID: r.ID, Method: method, DVOL: res.DVOL, DVOLIndex: res.DVOLIndex, Regime: r.Regime.Label})
		}
	}
	return points, nil
}

// alternating prices swing ~10% a day, well inside the alerting tiers
func swinging(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100
		if i%2 == 1 {
			prices[i] = 110
		}
	}
	return prices
}

func flat(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100
	}
	return prices
}

func newTestScheduler(t *testing.T, f *fakeFetcher) (*Scheduler, *fakeSender, *memRecorder) {
	t.Helper()
	col := collector.NewCollector(f, "BTC-USD", model.Period30D, model.Methods, calculator.DefaultOptions())
	tr, err := tracker.NewTracker("")
	if err != nil {
		t.Fatalf("NewTracker failed: %v", err)
	}
	sender := &fakeSender{}
	rec := &memRecorder{}
	s := NewScheduler(context.Background(), col, tr, sender, rec)
	return s, sender, rec
}

func TestReportTask(t *testing.T) {
	f := &fakeFetcher{prices: flat(40)}
	s, sender, rec := newTestScheduler(t, f)

	s.RunReportNow()
	if len(rec.reports) != 1 {
		t.Fatalf("expected 1 recorded report, got %d", len(rec.reports))
	}
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "Regime:</b> calm") {
		t.Errorf("expected a calm report message, got %v", sender.sent)
	}
}

func TestReportTask_FetchError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("provider down")}
	s, sender, rec := newTestScheduler(t, f)

	s.reportTask()
	if len(rec.reports) != 0 {
		t.Error("nothing should be recorded on failure")
	}
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "provider down") {
		t.Errorf("expected failure notice, got %v", sender.sent)
	}
}

func TestCheckTask_AlertsOnRegimeChange(t *testing.T) {
	f := &fakeFetcher{prices: flat(40)}
	s, sender, _ := newTestScheduler(t, f)

	s.checkTask()
	if len(sender.sent) != 0 {
		t.Fatalf("first calm reading should stay silent, got %v", sender.sent)
	}

	f.prices = swinging(40)
	s.checkTask()
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "regime change") {
		t.Fatalf("expected one regime alert, got %v", sender.sent)
	}

	s.checkTask()
	if len(sender.sent) != 1 {
		t.Errorf("unchanged regime should not alert again, got %d messages", len(sender.sent))
	}

	f.prices = flat(40)
	s.checkTask()
	if len(sender.sent) != 2 || !strings.Contains(sender.sent[1], "→ calm") {
		t.Errorf("expected an all-clear alert, got %v", sender.sent)
	}
}

func TestHandleCommand(t *testing.T) {
	f := &fakeFetcher{prices: flat(40)}
	s, _, rec := newTestScheduler(t, f)
	s.History = rec

	if reply := s.HandleCommand("/regime"); !strings.Contains(reply, "No regime recorded") {
		t.Errorf("unexpected /regime reply before any report: %s", reply)
	}

	reply := s.HandleCommand("/dvol@VolSentinelBot eth-usd 7d")
	if !strings.Contains(reply, "ETH-USD 7d") {
		t.Errorf("unexpected /dvol reply: %s", reply)
	}
	if got := f.calls[len(f.calls)-1]; got != "ETH-USD/7d" {
		t.Errorf("expected fetch for ETH-USD/7d, got %s", got)
	}

	if reply := s.HandleCommand("/regime ETH-USD"); !strings.Contains(reply, "calm") {
		t.Errorf("unexpected /regime reply: %s", reply)
	}
	if reply := s.HandleCommand("/diag"); !strings.Contains(reply, "Diagnostics") {
		t.Errorf("unexpected /diag reply: %s", reply)
	}
	if reply := s.HandleCommand("/dvol BTC-USD 2w"); !strings.Contains(reply, "unknown period") {
		t.Errorf("expected period error, got %s", reply)
	}
	if reply := s.HandleCommand("/history ETH-USD ewma"); !strings.Contains(reply, "calm") {
		t.Errorf("unexpected /history reply: %s", reply)
	}
	if reply := s.HandleCommand("hello"); !strings.Contains(reply, "Available commands") {
		t.Errorf("expected help text, got %s", reply)
	}
}

func TestRegisterAll_InvalidCron(t *testing.T) {
	s, _, _ := newTestScheduler(t, &fakeFetcher{prices: flat(10)})
	if err := s.RegisterAll("not a cron", "0 0 * * * *"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.RegisterAll("0 0 8 * * *", "0 0 * * * *"); err != nil {
		t.Errorf("valid expressions rejected: %v", err)
	}
}
