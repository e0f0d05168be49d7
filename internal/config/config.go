package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings for trendintel.
type Config struct {
	APIURL         string
	PollInterval   time.Duration
	Cooldown       time.Duration
	FeedLimit      int
	ReportsLimit   int
	RequestTimeout time.Duration
	CacheDir       string
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/trendintel/config.toml"
	defaultDataDir        = "~/.local/share/trendintel"
	defaultAPIURL         = "http://localhost:8000"
	defaultPollInterval   = 5 * time.Second
	defaultCooldown       = 5 * time.Second
	defaultFeedLimit      = 50
	defaultReportsLimit   = 20
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
)

type fileConfig struct {
	APIURL         string `toml:"api_url"`
	PollInterval   string `toml:"poll_interval"`
	Cooldown       string `toml:"cooldown"`
	FeedLimit      int    `toml:"feed_limit"`
	ReportsLimit   int    `toml:"reports_limit"`
	RequestTimeout string `toml:"request_timeout"`
	CacheDir       string `toml:"cache_dir"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
}

// envConfig lists the environment overrides. Zero values mean "unset".
type envConfig struct {
	APIURL         string        `env:"TRENDINTEL_API_URL"`
	ViteAPIURL     string        `env:"VITE_API_URL"`
	PollInterval   time.Duration `env:"TRENDINTEL_POLL_INTERVAL"`
	Cooldown       time.Duration `env:"TRENDINTEL_COOLDOWN"`
	FeedLimit      int           `env:"TRENDINTEL_FEED_LIMIT"`
	ReportsLimit   int           `env:"TRENDINTEL_REPORTS_LIMIT"`
	RequestTimeout time.Duration `env:"TRENDINTEL_REQUEST_TIMEOUT"`
	CacheDir       string        `env:"TRENDINTEL_CACHE_DIR"`
	LogFile        string        `env:"TRENDINTEL_LOG_FILE"`
	LogLevel       string        `env:"TRENDINTEL_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		APIURL:         defaultAPIURL,
		PollInterval:   defaultPollInterval,
		Cooldown:       defaultCooldown,
		FeedLimit:      defaultFeedLimit,
		ReportsLimit:   defaultReportsLimit,
		RequestTimeout: defaultRequestTimeout,
		CacheDir:       dataDir,
		LogFile:        filepath.Join(dataDir, "trendintel.log"),
		LogLevel:       defaultLogLevel,
	}
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load reads the TOML config at path (or the default location), then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.applyFile(resolved); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is ignored.
func LoadDotenv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if c.PollInterval, err = durationOr(raw.PollInterval, c.PollInterval); err != nil {
		return fmt.Errorf("parse config: poll_interval: %w", err)
	}
	if c.Cooldown, err = durationOr(raw.Cooldown, c.Cooldown); err != nil {
		return fmt.Errorf("parse config: cooldown: %w", err)
	}
	if c.RequestTimeout, err = durationOr(raw.RequestTimeout, c.RequestTimeout); err != nil {
		return fmt.Errorf("parse config: request_timeout: %w", err)
	}
	if raw.FeedLimit > 0 {
		c.FeedLimit = raw.FeedLimit
	}
	if raw.ReportsLimit > 0 {
		c.ReportsLimit = raw.ReportsLimit
	}
	if v := strings.TrimSpace(raw.CacheDir); v != "" {
		c.CacheDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	// VITE_API_URL is honoured for .env files shared with the web frontend.
	if v := strings.TrimSpace(raw.ViteAPIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if raw.PollInterval > 0 {
		c.PollInterval = raw.PollInterval
	}
	if raw.Cooldown > 0 {
		c.Cooldown = raw.Cooldown
	}
	if raw.RequestTimeout > 0 {
		c.RequestTimeout = raw.RequestTimeout
	}
	if raw.FeedLimit > 0 {
		c.FeedLimit = raw.FeedLimit
	}
	if raw.ReportsLimit > 0 {
		c.ReportsLimit = raw.ReportsLimit
	}
	if v := strings.TrimSpace(raw.CacheDir); v != "" {
		c.CacheDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

func durationOr(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fallback, err
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
