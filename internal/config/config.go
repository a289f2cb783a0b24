package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Each envconfig tag names the
// environment variable that overrides the YAML value.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Discord struct {
		WebhookURL string `yaml:"webhook_url" envconfig:"DISCORD_WEBHOOK_URL"`
	} `yaml:"discord"`
	DataSource struct {
		Provider  string        `yaml:"provider" envconfig:"DATA_PROVIDER"`
		BaseURL   string        `yaml:"base_url" envconfig:"DATA_BASE_URL"`
		APIKey    string        `yaml:"api_key" envconfig:"ALPACA_API_KEY"`
		APISecret string        `yaml:"api_secret" envconfig:"ALPACA_API_SECRET"`
		Feed      string        `yaml:"feed" envconfig:"ALPACA_FEED"`
		Timeout   time.Duration `yaml:"timeout" envconfig:"DATA_TIMEOUT"`
	} `yaml:"data_source"`
	News struct {
		BaseURL      string        `yaml:"base_url" envconfig:"NEWS_BASE_URL"`
		APIKey       string        `yaml:"api_key" envconfig:"FINNHUB_API_KEY"`
		DaysBack     int           `yaml:"days_back" envconfig:"NEWS_DAYS_BACK"`
		MaxHeadlines int           `yaml:"max_headlines" envconfig:"NEWS_MAX_HEADLINES"`
		Timeout      time.Duration `yaml:"timeout" envconfig:"NEWS_TIMEOUT"`
		Keywords     []string      `yaml:"keywords" envconfig:"NEWS_KEYWORDS"`
	} `yaml:"news"`
	Scanner struct {
		PriceCeiling    float64 `yaml:"price_ceiling" envconfig:"PRICE_CEILING"`
		ShortLimit      int     `yaml:"short_limit" envconfig:"SHORT_LIMIT"`
		LongLimit       int     `yaml:"long_limit" envconfig:"LONG_LIMIT"`
		MinBars         int     `yaml:"min_bars" envconfig:"MIN_BARS"`
		MinAvgVolume    float64 `yaml:"min_avg_volume" envconfig:"MIN_AVG_VOLUME"`
		SpikeMultiplier float64 `yaml:"spike_multiplier" envconfig:"SPIKE_MULTIPLIER"`
		CapitalPerTrade float64 `yaml:"capital_per_trade" envconfig:"CAPITAL_PER_TRADE"`
		RiskPct         float64 `yaml:"risk_pct" envconfig:"RISK_PCT"`
		ProfitMultiple  float64 `yaml:"profit_multiple" envconfig:"PROFIT_MULTIPLE"`
		MaxCandidates   int     `yaml:"max_candidates" envconfig:"MAX_RESULTS_PER_SCAN"`
		Workers         int     `yaml:"workers" envconfig:"SCAN_WORKERS"`
	} `yaml:"scanner"`
	Schedule struct {
		IntervalSeconds int    `yaml:"interval_seconds" envconfig:"SCAN_INTERVAL_SECONDS"`
		Timezone        string `yaml:"timezone" envconfig:"MARKET_TIMEZONE"`
		OpenHour        *int   `yaml:"open_hour" envconfig:"MARKET_OPEN_HOUR"`
		CloseHour       *int   `yaml:"close_hour" envconfig:"MARKET_CLOSE_HOUR"`
		WeekdaysOnly    *bool  `yaml:"weekdays_only" envconfig:"MARKET_WEEKDAYS_ONLY"`
		AutoStart       *bool  `yaml:"auto_start" envconfig:"AUTO_START"`
	} `yaml:"schedule"`
	Universe struct {
		SymbolsFile string `yaml:"symbols_file" envconfig:"SYMBOLS_FILE"`
	} `yaml:"universe"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr" envconfig:"HTTP_ADDR"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" envconfig:"LOG_LEVEL"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, loads .env if present, then applies
// environment variable overrides and defaults.
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

	// Variables already in the environment win over .env entries.
	_ = godotenv.Load()

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "alpaca"
	}
	c.DataSource.Provider = strings.ToLower(c.DataSource.Provider)
	if c.DataSource.Feed == "" {
		c.DataSource.Feed = "iex"
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 10 * time.Second
	}

	if c.News.DaysBack == 0 {
		c.News.DaysBack = 5
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}

	s := &c.Scanner
	if s.PriceCeiling == 0 {
		s.PriceCeiling = 10
	}
	if s.ShortLimit == 0 {
		s.ShortLimit = 5
	}
	if s.LongLimit == 0 {
		s.LongLimit = 120
	}
	if s.MinBars == 0 {
		s.MinBars = 20
	}
	if s.MinAvgVolume == 0 {
		s.MinAvgVolume = 100000
	}
	if s.SpikeMultiplier == 0 {
		s.SpikeMultiplier = 1.8
	}
	if s.CapitalPerTrade == 0 {
		s.CapitalPerTrade = 1000
	}
	if s.RiskPct == 0 {
		s.RiskPct = 0.005
	}
	if s.ProfitMultiple == 0 {
		s.ProfitMultiple = 2
	}
	if s.MaxCandidates == 0 {
		s.MaxCandidates = 25
	}
	if s.Workers == 0 {
		s.Workers = 1
	}

	sc := &c.Schedule
	if sc.IntervalSeconds == 0 {
		sc.IntervalSeconds = 60
	}
	if sc.Timezone == "" {
		sc.Timezone = "America/New_York"
	}
	if sc.OpenHour == nil {
		sc.OpenHour = intPtr(c.OpenHour())
	}
	if sc.CloseHour == nil {
		sc.CloseHour = intPtr(c.CloseHour())
	}
	if sc.WeekdaysOnly == nil {
		weekdays := true
		sc.WeekdaysOnly = &weekdays
	}
	if sc.AutoStart == nil {
		autoStart := true
		sc.AutoStart = &autoStart
	}

	if c.Universe.SymbolsFile == "" {
		c.Universe.SymbolsFile = "configs/symbols.txt"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// DiscordEnabled reports whether Discord delivery is configured.
func (c *Config) DiscordEnabled() bool {
	return c.Discord.WebhookURL != ""
}

// Interval returns the scan cadence.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Schedule.IntervalSeconds) * time.Second
}

// OpenHour is the first local hour inside the market window.
func (c *Config) OpenHour() int {
	if c.Schedule.OpenHour == nil {
		return 4
	}
	return *c.Schedule.OpenHour
}

// CloseHour is the first local hour after the market window.
func (c *Config) CloseHour() int {
	if c.Schedule.CloseHour == nil {
		return 20
	}
	return *c.Schedule.CloseHour
}

// WeekdaysOnly reports whether weekends are outside the window.
func (c *Config) WeekdaysOnly() bool {
	return c.Schedule.WeekdaysOnly == nil || *c.Schedule.WeekdaysOnly
}

// AutoStart reports whether scanning is enabled at startup.
func (c *Config) AutoStart() bool {
	return c.Schedule.AutoStart == nil || *c.Schedule.AutoStart
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	var errs []error
	if !c.TelegramEnabled() && !c.DiscordEnabled() {
		errs = append(errs, errors.New("a delivery channel is required: telegram.bot_token + telegram.chat_id or discord.webhook_url"))
	}
	switch c.DataSource.Provider {
	case "alpaca":
		if c.DataSource.APIKey == "" || c.DataSource.APISecret == "" {
			errs = append(errs, errors.New("data_source.api_key and data_source.api_secret are required for alpaca"))
		}
	case "yahoo", "mock":
	default:
		errs = append(errs, fmt.Errorf("data_source.provider %q is not one of alpaca, yahoo, mock", c.DataSource.Provider))
	}
	if c.Schedule.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("schedule.interval_seconds must be positive"))
	}
	if c.Scanner.CapitalPerTrade <= 0 {
		errs = append(errs, errors.New("scanner.capital_per_trade must be positive"))
	}
	if c.Scanner.PriceCeiling <= 0 {
		errs = append(errs, errors.New("scanner.price_ceiling must be positive"))
	}
	if c.Scanner.RiskPct <= 0 || c.Scanner.RiskPct >= 1 {
		errs = append(errs, errors.New("scanner.risk_pct must be between 0 and 1"))
	}
	if c.Scanner.ProfitMultiple <= 1 {
		errs = append(errs, errors.New("scanner.profit_multiple must be greater than 1"))
	}
	if c.Scanner.ShortLimit <= 0 || c.Scanner.LongLimit < c.Scanner.MinBars {
		errs = append(errs, errors.New("scanner.short_limit must be positive and long_limit at least min_bars"))
	}
	if c.Scanner.Workers < 1 {
		errs = append(errs, errors.New("scanner.workers must be at least 1"))
	}
	if open, closeHour := c.OpenHour(), c.CloseHour(); open < 0 || closeHour > 24 || open >= closeHour {
		errs = append(errs, fmt.Errorf("schedule hours must satisfy 0 <= open_hour < close_hour <= 24, got %d-%d", open, closeHour))
	}
	return errors.Join(errs...)
}

func intPtr(v int) *int { return &v }
