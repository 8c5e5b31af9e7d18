// Package config assembles process configuration from a .env file, an
// optional JSON file and the environment, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
)

const (
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvGoogleMapsAPIKey = "GOOGLE_MAPS_API_KEY"
	EnvOpenAIModel      = "OPENAI_MODEL"
	EnvOpenAIBaseURL    = "OPENAI_BASE_URL"
	EnvLogLevel         = "INTAKE_LOG_LEVEL"

	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = float32(0.3)
	DefaultTimeout     = 30 * time.Second
)

var ErrMissingCredential = errors.New("missing required credential")

type Config struct {
	OpenAIAPIKey     string
	GoogleMapsAPIKey string

	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	LogLevel    slog.Level

	// HistoryWindow caps how many non-system messages are replayed to the
	// model per turn. Zero replays the full history.
	HistoryWindow int
}

type fileConfig struct {
	Model         string   `json:"model"`
	BaseURL       string   `json:"base_url"`
	Temperature   *float32 `json:"temperature"`
	Timeout       string   `json:"timeout"`
	LogLevel      string   `json:"log_level"`
	HistoryWindow int      `json:"history_window"`
}

func Default() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
		LogLevel:    slog.LevelInfo,
	}
}

// Load reads .env (if present), the JSON file at path (if path is not
// empty) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	conf := Default()
	if path != "" {
		if err := conf.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := sonic.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Model != "" {
		c.Model = fc.Model
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.Temperature != nil {
		c.Temperature = *fc.Temperature
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout %q: %w", fc.Timeout, err)
		}
		c.Timeout = d
	}
	if fc.LogLevel != "" {
		level, err := parseLevel(fc.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	c.HistoryWindow = fc.HistoryWindow
	return nil
}

func (c *Config) applyEnv() error {
	c.OpenAIAPIKey = strings.TrimSpace(os.Getenv(EnvOpenAIAPIKey))
	c.GoogleMapsAPIKey = strings.TrimSpace(os.Getenv(EnvGoogleMapsAPIKey))
	if v := os.Getenv(EnvOpenAIModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	return nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, EnvOpenAIAPIKey)
	}
	if c.GoogleMapsAPIKey == "" {
		missing = append(missing, EnvGoogleMapsAPIKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingCredential, strings.Join(missing, ", "))
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return level, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Model:%q, BaseURL:%q, Temperature:%v, Timeout:%s}", c.Model, c.BaseURL, c.Temperature, c.Timeout)
}
