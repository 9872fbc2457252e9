package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mongo    MongoConfig    `yaml:"mongo"`
	News     NewsConfig     `yaml:"news"`
	Mail     MailConfig     `yaml:"mail"`
	Telegram TelegramConfig `yaml:"telegram"`
	Signals  SignalsConfig  `yaml:"signals"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type MongoConfig struct {
	URI               string `yaml:"uri"`
	Database          string `yaml:"database"`
	DataCollection    string `yaml:"data_collection"`
	DailyCollection   string `yaml:"daily_collection"`
	MonthlyCollection string `yaml:"monthly_collection"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

type NewsConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Query          string `yaml:"query"`
	PageSize       int    `yaml:"page_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MailConfig struct {
	APIKey string   `yaml:"api_key"`
	From   string   `yaml:"from"`
	To     []string `yaml:"to"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type SignalsConfig struct {
	DataDefaultLimit int `yaml:"data_default_limit"`
	DataMaxLimit     int `yaml:"data_max_limit"`
	DailyLimit       int `yaml:"daily_limit"`
	MonthlyLimit     int `yaml:"monthly_limit"`
}

type WebConfig struct {
	Port           int      `yaml:"port"`
	SiteURL        string   `yaml:"site_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	EnforceOrigin  bool     `yaml:"enforce_origin"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path (a missing file means all defaults),
// applies environment overrides and defaults, then validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("MONGODB_URI"); ok {
		cfg.Mongo.URI = v
	}
	if v, ok := lookup("MONGODB_DATABASE"); ok && v != "" {
		cfg.Mongo.Database = v
	}
	if v, ok := lookup("NEWS_API_KEY"); ok {
		cfg.News.APIKey = v
	}
	if v, ok := lookup("RESEND_API_KEY"); ok {
		cfg.Mail.APIKey = v
	}
	if v, ok := lookup("NEXT_PUBLIC_SITE_URL"); ok && v != "" {
		cfg.Web.SiteURL = v
	}
	if v, ok := lookup("SITE_URL"); ok && v != "" {
		cfg.Web.SiteURL = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Web.Port = port
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "signals"
	}
	if cfg.Mongo.DataCollection == "" {
		cfg.Mongo.DataCollection = "sigData"
	}
	if cfg.Mongo.DailyCollection == "" {
		cfg.Mongo.DailyCollection = "daily"
	}
	if cfg.Mongo.MonthlyCollection == "" {
		cfg.Mongo.MonthlyCollection = "monthly"
	}
	if cfg.Mongo.TimeoutSeconds == 0 {
		cfg.Mongo.TimeoutSeconds = 5
	}
	if cfg.News.BaseURL == "" {
		cfg.News.BaseURL = "https://newsapi.org/v2"
	}
	if cfg.News.Query == "" {
		cfg.News.Query = "forex OR finance OR trading OR economy"
	}
	if cfg.News.PageSize == 0 {
		cfg.News.PageSize = 20
	}
	if cfg.News.TimeoutSeconds == 0 {
		cfg.News.TimeoutSeconds = 10
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = "Contact Form <onboarding@resend.dev>"
	}
	if cfg.Signals.DataDefaultLimit == 0 {
		cfg.Signals.DataDefaultLimit = 20
	}
	if cfg.Signals.DataMaxLimit == 0 {
		cfg.Signals.DataMaxLimit = 200
	}
	if cfg.Signals.DailyLimit == 0 {
		cfg.Signals.DailyLimit = 50
	}
	if cfg.Signals.MonthlyLimit == 0 {
		cfg.Signals.MonthlyLimit = 200
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks shape only. Missing credentials are not errors: the
// services fall back to mock data or simulated delivery.
func (c *Config) Validate() error {
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web.port %d", c.Web.Port)
	}
	if c.Mongo.TimeoutSeconds < 0 {
		return fmt.Errorf("mongo.timeout_seconds must not be negative")
	}
	if c.Signals.DataDefaultLimit > c.Signals.DataMaxLimit {
		return fmt.Errorf("signals.data_default_limit %d exceeds data_max_limit %d",
			c.Signals.DataDefaultLimit, c.Signals.DataMaxLimit)
	}
	if c.Signals.DataMaxLimit < 0 || c.Signals.DailyLimit < 0 || c.Signals.MonthlyLimit < 0 {
		return fmt.Errorf("signals limits must be positive")
	}
	if c.Mail.APIKey != "" && len(c.Mail.To) == 0 {
		return fmt.Errorf("mail.to is required when mail.api_key is set")
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

func (c *Config) StoreConfigured() bool {
	return c.Mongo.URI != ""
}

func (c *Config) MongoTimeout() time.Duration {
	return time.Duration(c.Mongo.TimeoutSeconds) * time.Second
}

func (c *Config) NewsTimeout() time.Duration {
	return time.Duration(c.News.TimeoutSeconds) * time.Second
}

// Origins returns the origins allowed to post the contact form.
func (c *Config) Origins() []string {
	origins := make([]string, 0, len(c.Web.AllowedOrigins)+2)
	if c.Web.SiteURL != "" {
		origins = append(origins, c.Web.SiteURL)
	}
	origins = append(origins, c.Web.AllowedOrigins...)
	return append(origins, "http://localhost:3000")
}
