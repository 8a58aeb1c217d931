package config

import (
	"errors"
	"fmt"
	"time"

	"golang-market-sentiment/pkg/config"
)

// AlphaVantage holds the upstream market data API configuration.
type AlphaVantage struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Storage holds the output directory configuration.
type Storage struct {
	DataDir string        `mapstructure:"data_dir"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

// Report holds sentiment report defaults.
type Report struct {
	RelevanceThreshold float64 `mapstructure:"relevance_threshold"`
	NewsLimit          int     `mapstructure:"news_limit"`
	Sort               string  `mapstructure:"sort"`
	Compress           bool    `mapstructure:"compress"`
}

// Telegram holds configuration for the optional Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// QAProxy holds configuration for the question-answering service.
type QAProxy struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config holds the full configuration for the dashboard service and CLI.
type Config struct {
	App          config.App     `mapstructure:"app"`
	Logger       config.Logger  `mapstructure:"logger"`
	API          config.API     `mapstructure:"api"`
	Redis        config.Redis   `mapstructure:"redis"`
	Tracing      config.Tracing `mapstructure:"tracing"`
	AlphaVantage AlphaVantage   `mapstructure:"alpha_vantage"`
	Storage      Storage        `mapstructure:"storage"`
	Report       Report         `mapstructure:"report"`
	Telegram     Telegram       `mapstructure:"telegram"`
	QAProxy      QAProxy        `mapstructure:"qa_proxy"`
}

// Defaults returns the documented default for every configuration key.
// alpha_vantage.api_key has no usable default and must come from the file or
// the ALPHA_VANTAGE_API_KEY environment variable.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                   "market-sentiment-dashboard",
		"app.env":                    "development",
		"app.version":                "1.0.0",
		"logger.level":               "info",
		"logger.encoding":            "json",
		"api.host":                   "0.0.0.0",
		"api.port":                   8080,
		"redis.enabled":              false,
		"redis.host":                 "localhost",
		"redis.port":                 6379,
		"redis.password":             "",
		"redis.db":                   0,
		"redis.pool_size":            10,
		"redis.stream_max_len":       1000,
		"tracing.enabled":            false,
		"alpha_vantage.base_url":     "https://www.alphavantage.co/query",
		"alpha_vantage.api_key":      "",
		"alpha_vantage.timeout":      "30s",
		"storage.data_dir":           "./data",
		"storage.lock_ttl":           "30s",
		"report.relevance_threshold": 0.5,
		"report.news_limit":          50,
		"report.sort":                "LATEST",
		"report.compress":            true,
		"telegram.enabled":           false,
		"telegram.bot_token":         "",
		"telegram.chat_id":           0,
		"qa_proxy.base_url":          "http://localhost:8000",
		"qa_proxy.timeout":           "60s",
	}
}

// Validate checks the fields every component relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.AlphaVantage.APIKey == "" {
		errs = append(errs, errors.New("alpha_vantage.api_key is required"))
	}
	if c.AlphaVantage.BaseURL == "" {
		errs = append(errs, errors.New("alpha_vantage.base_url is required"))
	}
	if c.AlphaVantage.Timeout <= 0 {
		errs = append(errs, errors.New("alpha_vantage.timeout must be positive"))
	}
	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.data_dir is required"))
	}
	if c.Report.RelevanceThreshold < 0 || c.Report.RelevanceThreshold > 1 {
		errs = append(errs, fmt.Errorf("report.relevance_threshold %v must be within [0, 1]", c.Report.RelevanceThreshold))
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == 0) {
		errs = append(errs, errors.New("telegram.bot_token and telegram.chat_id are required when telegram is enabled"))
	}
	return errors.Join(errs...)
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
