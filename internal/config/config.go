package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"wiki-resolver-go/internal/types"
)

type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Wikipedia WikipediaConfig  `yaml:"wikipedia"`
	Cache     CacheConfig      `yaml:"cache"`
	Resolver  types.Thresholds `yaml:"resolver"`
	Logging   LoggingConfig    `yaml:"logging"`
	Batch     BatchConfig      `yaml:"batch"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type WikipediaConfig struct {
	Language          string        `yaml:"language"`
	UserAgent         string        `yaml:"user_agent"`
	BaseURL           string        `yaml:"base_url"`
	MaxResults        int           `yaml:"max_results"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxAttempts       int           `yaml:"max_attempts"`
	MinBackoff        time.Duration `yaml:"min_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	MaxContinuations  int           `yaml:"max_continuations"`
}

type CacheConfig struct {
	Dir string        `yaml:"dir"`
	TTL time.Duration `yaml:"ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Wikipedia: WikipediaConfig{
			Language:          "en",
			UserAgent:         "wiki-resolver-go/0.1",
			MaxResults:        5,
			Timeout:           10 * time.Second,
			MaxAttempts:       5,
			MinBackoff:        time.Second,
			MaxBackoff:        10 * time.Second,
			RequestsPerSecond: 10,
		},
		Cache: CacheConfig{
			TTL: 7 * 24 * time.Hour,
		},
		Resolver: types.DefaultThresholds(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Load reads an optional YAML file over the defaults, then applies .env and
// environment overrides, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load() // loads .env
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" && v != "local" {
		c.Logging.Format = "json"
	}
	if v := os.Getenv("WIKI_LANGUAGE"); v != "" {
		c.Wikipedia.Language = v
	}
	if v := os.Getenv("WIKI_USER_AGENT"); v != "" {
		c.Wikipedia.UserAgent = v
	}
	if v := os.Getenv("WIKI_BASE_URL"); v != "" {
		c.Wikipedia.BaseURL = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
}

func (c *Config) Validate() error {
	if c.Wikipedia.Language == "" && c.Wikipedia.BaseURL == "" {
		return fmt.Errorf("wikipedia.language or wikipedia.base_url is required")
	}
	if c.Wikipedia.UserAgent == "" {
		return fmt.Errorf("wikipedia.user_agent is required")
	}
	if c.Wikipedia.MaxResults < 0 {
		return fmt.Errorf("wikipedia.max_results must not be negative")
	}
	if c.Wikipedia.MaxAttempts < 0 {
		return fmt.Errorf("wikipedia.max_attempts must not be negative")
	}
	if c.Wikipedia.MaxContinuations < 0 {
		return fmt.Errorf("wikipedia.max_continuations must not be negative")
	}
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Wikipedia.MaxResults == 0 {
		c.Wikipedia.MaxResults = 5
	}
	if c.Wikipedia.MaxAttempts == 0 {
		c.Wikipedia.MaxAttempts = 5
	}
	if c.Wikipedia.Timeout == 0 {
		c.Wikipedia.Timeout = 10 * time.Second
	}
	if c.Wikipedia.MinBackoff == 0 {
		c.Wikipedia.MinBackoff = time.Second
	}
	if c.Wikipedia.MaxBackoff < c.Wikipedia.MinBackoff {
		c.Wikipedia.MaxBackoff = c.Wikipedia.MinBackoff
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 7 * 24 * time.Hour
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = 1
	}

	return nil
}
