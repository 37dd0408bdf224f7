package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VolSentinel/internal/collector"
	"VolSentinel/internal/config"
	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
	"VolSentinel/internal/notifier"
	"VolSentinel/internal/recorder"
	"VolSentinel/internal/scheduler"
	"VolSentinel/internal/tracker"
)

func main() {
	logger.Info("VolSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	// Init fetcher
	fetcher := newFetcher(cfg)
	logger.Info("data source: %s", fetcher.Name())

	// Init collector
	period, _ := model.ParsePeriod(cfg.DataSource.Period)
	methods, _ := cfg.DVOL.ParsedMethods()
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, period, methods, cfg.DVOL.Options())

	// Init regime tracker
	tr, err := tracker.NewTracker(cfg.Tracker.StateFile)
	if err != nil {
		logger.Fatal("init regime tracker: %v", err)
	}

	// Init Telegram notifier
	tn, err := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if err != nil {
		logger.Fatal("init telegram notifier: %v", err)
	}

	// Init recorders
	var recs recorder.MultiRecorder
	var history scheduler.HistoryStore
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, sr)
			history = sr
		}
	}
	if cfg.Redis.Addr != "" {
		rr, err := recorder.NewRedisRecorder(cfg.Redis.Addr, cfg.Redis.Stream)
		if err != nil {
			logger.Warn("init redis recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, rr)
		}
	}
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if len(recs) > 0 {
		rec = recs
	}
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tr, tn, rec)
	sched.History = history
	if err := sched.RegisterAll(cfg.Schedule.ReportCron, cfg.Schedule.CheckCron); err != nil {
		logger.Fatal("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	logger.Info("Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, executing report task now")
		go sched.RunReportNow()
	}

	logger.Info("VolSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
	logger.Info("VolSentinel stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	var primary collector.Fetcher
	switch cfg.DataSource.Provider {
	case "binance":
		primary = collector.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	case "rest":
		primary = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		primary = collector.NewYahooFetcher(cfg.Proxy)
	}
	if !cfg.DataSource.SyntheticFallback {
		return primary
	}
	// a synthetic walk anchored on the primary's quote stands in when history is unavailable
	return collector.NewFallbackFetcher(primary, collector.NewSyntheticFetcher(primary, uint64(cfg.DataSource.SyntheticSeed)))
}
