package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"VolSentinel/internal/calculator"
	"VolSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider          string `yaml:"provider"` // yahoo, binance or rest
		BaseURL           string `yaml:"base_url"`
		APIKey            string `yaml:"api_key"`
		Symbol            string `yaml:"symbol"`
		Period            string `yaml:"period"`
		SyntheticFallback bool   `yaml:"synthetic_fallback"`
		SyntheticSeed     int64  `yaml:"synthetic_seed"`
	} `yaml:"data_source"`
	DVOL     DVOLConfig `yaml:"dvol"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
		CheckCron  string `yaml:"check_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr   string `yaml:"addr"`
		Stream string `yaml:"stream"`
	} `yaml:"redis"`
	Tracker struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"tracker"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// DVOLConfig holds estimator parameters. Unset fields fall back to calculator
// defaults; an explicit zero is kept so Validate can reject it.
type DVOLConfig struct {
	Methods             []string           `yaml:"methods"`
	WindowSize          *int               `yaml:"window_size"`
	Lambda              *float64           `yaml:"lambda"`
	GARCH               *model.GARCHParams `yaml:"garch"`
	AnnualizationFactor *float64           `yaml:"annualization_factor"`
}

// Options converts the section into calculator options.
func (d DVOLConfig) Options() calculator.Options {
	opts := calculator.DefaultOptions()
	if d.WindowSize != nil {
		opts.WindowSize = *d.WindowSize
	}
	if d.Lambda != nil {
		opts.Lambda = *d.Lambda
	}
	if d.GARCH != nil {
		opts.GARCH = *d.GARCH
	}
	if d.AnnualizationFactor != nil {
		opts.AnnualizationFactor = *d.AnnualizationFactor
	}
	return opts
}

// ParsedMethods returns the configured estimator tags.
func (d DVOLConfig) ParsedMethods() ([]model.Method, error) {
	methods := make([]model.Method, 0, len(d.Methods))
	for _, s := range d.Methods {
		m, err := model.ParseMethod(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("PERIOD"); v != "" {
		cfg.DataSource.Period = v
	}
	if v := os.Getenv("DVOL_METHODS"); v != "" {
		cfg.DVOL.Methods = strings.Split(v, ",")
	}
	if v := os.Getenv("DVOL_LAMBDA"); v != "" {
		var lambda float64
		if _, err := fmt.Sscanf(v, "%f", &lambda); err == nil {
			cfg.DVOL.Lambda = &lambda
		}
	}
	if v := os.Getenv("DVOL_WINDOW_SIZE"); v != "" {
		var window int
		if _, err := fmt.Sscanf(v, "%d", &window); err == nil {
			cfg.DVOL.WindowSize = &window
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		cfg.Schedule.ReportCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "BTC-USD"
	}
	if cfg.DataSource.Period == "" {
		cfg.DataSource.Period = string(model.DefaultPeriod)
	}
	if len(cfg.DVOL.Methods) == 0 {
		for _, m := range model.Methods {
			cfg.DVOL.Methods = append(cfg.DVOL.Methods, string(m))
		}
	}
	defaults := calculator.DefaultOptions()
	if cfg.DVOL.WindowSize == nil {
		cfg.DVOL.WindowSize = &defaults.WindowSize
	}
	if cfg.DVOL.Lambda == nil {
		cfg.DVOL.Lambda = &defaults.Lambda
	}
	if cfg.DVOL.GARCH == nil {
		cfg.DVOL.GARCH = &defaults.GARCH
	}
	if cfg.DVOL.AnnualizationFactor == nil {
		cfg.DVOL.AnnualizationFactor = &defaults.AnnualizationFactor
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 0 8 * * *"
	}
	if cfg.Schedule.CheckCron == "" {
		cfg.Schedule.CheckCron = "0 0 * * * *"
	}
	if cfg.Redis.Stream == "" {
		cfg.Redis.Stream = "volsentinel:reports"
	}
	if cfg.Tracker.StateFile == "" {
		cfg.Tracker.StateFile = "data/regime_state.json"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate checks that all required fields are set and estimator parameters are sane.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "binance":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider must be one of: yahoo, binance, rest")
	}
	if _, err := model.ParsePeriod(c.DataSource.Period); err != nil {
		return fmt.Errorf("data_source.period: %w", err)
	}
	methods, err := c.DVOL.ParsedMethods()
	if err != nil {
		return fmt.Errorf("dvol.methods: %w", err)
	}
	opts := c.DVOL.Options()
	for _, m := range methods {
		est, err := opts.Estimator(m)
		if err != nil {
			return fmt.Errorf("dvol: %w", err)
		}
		if err := est.Validate(); err != nil {
			return fmt.Errorf("dvol.%s: %w", m, err)
		}
	}
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	return nil
}
