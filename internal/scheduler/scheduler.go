package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"VolSentinel/internal/collector"
	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
	"VolSentinel/internal/notifier"
	"VolSentinel/internal/recorder"
	"VolSentinel/internal/tracker"
)

const (
	sendRetries  = 3
	historyLimit = 10
)

// HistoryStore serves stored readings for the /history command.
type HistoryStore interface {
	History(ctx context.Context, symbol string, method model.Method, limit int) ([]recorder.HistoryPoint, error)
}

// Scheduler manages all cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Tracker   *tracker.Tracker
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	History   HistoryStore // optional
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tr *tracker.Tracker, tn notifier.Sender, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Tracker:   tr,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the periodic report and the regime check.
func (s *Scheduler) RegisterAll(reportCron, checkCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	if _, err := s.Cron.AddFunc(checkCron, s.checkTask); err != nil {
		return fmt.Errorf("register regime check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunReportNow executes the report task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	logger.Info("running report task")
	report, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		logger.Error("report collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Volatility report failed: %v", err))
		return
	}
	s.observe(report)
	s.trySend(notifier.FormatVolatilityReport(report))
}

func (s *Scheduler) checkTask() {
	logger.Debug("running regime check")
	report, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		logger.Error("regime check collect: %v", err)
		return
	}
	s.observe(report)
}

// observe records the report and pushes an alert when the regime moved
// into or out of an alerting tier.
func (s *Scheduler) observe(report *model.VolatilityReport) {
	if err := s.Recorder.RecordReport(s.Ctx, report); err != nil {
		logger.Error("record report %s: %v", report.ID, err)
	}
	if s.Tracker == nil {
		return
	}
	change, changed := s.Tracker.Update(report)
	if !changed {
		return
	}
	logger.Info("%s regime: %s -> %s", change.Symbol, change.From.Label, change.To.Label)
	if change.To.Alert || (!change.First && change.From.Alert) {
		s.trySend(notifier.FormatRegimeChange(change))
	}
}

// HandleCommand processes a user command and returns a reply.
// Commands take optional symbol and period arguments, e.g. "/dvol ETH-USD 7d".
func (s *Scheduler) HandleCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return helpText
	}
	// strip the "@botname" suffix Telegram adds in groups
	command, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch command {
	case "/dvol", "/report":
		report, err := s.collectFor(args)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		s.observe(report)
		return notifier.FormatVolatilityReport(report)
	case "/diag":
		report, err := s.collectFor(args)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatDiagnostics(report)
	case "/regime":
		symbol := s.Collector.Symbol
		if len(args) > 0 {
			symbol = strings.ToUpper(args[0])
		}
		if s.Tracker == nil {
			return "Regime tracking is disabled."
		}
		snap, ok := s.Tracker.Get(symbol)
		if !ok {
			return fmt.Sprintf("No regime recorded for %s yet.", symbol)
		}
		return notifier.FormatRegimeStatus(symbol, snap)
	case "/history":
		return s.history(args)
	default:
		return helpText
	}
}

const helpText = "Available commands:\n" +
	"• /dvol [symbol] [period] - volatility report\n" +
	"• /diag [symbol] [period] - return diagnostics\n" +
	"• /regime [symbol] - last observed regime\n" +
	"• /history [symbol] [method] - stored readings"

func (s *Scheduler) collectFor(args []string) (*model.VolatilityReport, error) {
	symbol, period := s.Collector.Symbol, s.Collector.Period
	if len(args) > 0 {
		symbol = strings.ToUpper(args[0])
	}
	if len(args) > 1 {
		p, err := model.ParsePeriod(strings.ToLower(args[1]))
		if err != nil {
			return nil, err
		}
		period = p
	}
	return s.Collector.CollectFor(s.Ctx, symbol, period)
}

func (s *Scheduler) history(args []string) string {
	if s.History == nil {
		return "History is not available without a SQLite database."
	}
	symbol, method := s.Collector.Symbol, model.MethodEWMA
	if len(args) > 0 {
		symbol = strings.ToUpper(args[0])
	}
	if len(args) > 1 {
		m, err := model.ParseMethod(strings.ToLower(args[1]))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		method = m
	}
	points, err := s.History.History(s.Ctx, symbol, method, historyLimit)
	if err != nil {
		logger.Error("load history: %v", err)
		return fmt.Sprintf("❌ load history: %v", err)
	}
	return notifier.FormatHistory(symbol, method, points)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		logger.Error("send notification: %v", err)
	}
}
