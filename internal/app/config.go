package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string        `env:"USTAT_HOME"`                                      // config directory, default $HOME/.ustat
	APIURL      string        `env:"USTAT_API_URL,default=https://api.ustatai.com"`   // main API root
	CalcURL     string        `env:"USTAT_CALC_URL,default=https://dev.api.ustat.ai"` // calculation API root
	Timeout     time.Duration `env:"USTAT_TIMEOUT,default=10s"`
	RefreshSkew time.Duration `env:"USTAT_REFRESH_SKEW,default=30s"`
	RateLimit   float64       `env:"USTAT_RATE_LIMIT,default=0"`
	Store       string        `env:"USTAT_STORE,default=file"`
	RedisURL    string        `env:"USTAT_REDIS_URL"`
	RedisPrefix string        `env:"USTAT_REDIS_PREFIX"`
	Passphrase  string        `env:"USTAT_PASSPHRASE"`
	LogLevel    string        `env:"USTAT_LOG_LEVEL,default=warn"`
	LogFormat   string        `env:"USTAT_LOG_FORMAT,default=text"`

	HTTP *http.Client // optional; defaults to http.DefaultClient
}

// LoadConfig loads envFile (if it exists) into the process environment and
// decodes USTAT_* variables over the defaults. Variables already set win
// over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

// Normalize fills derived defaults and validates cfg.
func (c *Config) Normalize() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".ustat")
	}
	if c.Store == "" {
		c.Store = StoreFile
	}
	switch c.Store {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("USTAT_REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store %q: want file, memory or redis", c.Store)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.CalcURL = strings.TrimRight(c.CalcURL, "/")
	for name, raw := range map[string]string{"api": c.APIURL, "calc-api": c.CalcURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s url %q must be an absolute http(s) URL", name, raw)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RefreshSkew < 0 || c.RateLimit < 0 {
		return errors.New("refresh skew and rate limit must not be negative")
	}
	return nil
}
