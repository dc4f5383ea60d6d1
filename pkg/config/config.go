package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" env:"APP_ENV" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" env:"HTTP_PORT" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"0s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"20s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Gemini struct {
		APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model   string        `yaml:"model" env:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		BaseURL string        `yaml:"base_url" env:"GEMINI_BASE_URL"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"gemini"`
	Chart struct {
		Size         float64 `yaml:"size" default:"500"`
		OuterRadius  float64 `yaml:"outer_radius" default:"240"`
		ZodiacRadius float64 `yaml:"zodiac_radius" default:"180"`
		InnerRadius  float64 `yaml:"inner_radius" default:"100"`
	} `yaml:"chart"`
	Breaker struct {
		Enabled      bool          `yaml:"enabled" default:"true"`
		MaxRequests  uint32        `yaml:"max_requests" default:"1"`
		Interval     time.Duration `yaml:"interval" default:"60s"`
		Timeout      time.Duration `yaml:"timeout" default:"30s"`
		MinRequests  uint32        `yaml:"min_requests" default:"5"`
		FailureRatio float64       `yaml:"failure_ratio" default:"0.8"`
	} `yaml:"breaker"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled" default:"true"`
		Burst        float64 `yaml:"burst" default:"3"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"0.2"`
	} `yaml:"rate_limit"`
	Session struct {
		IdleTTL time.Duration `yaml:"idle_ttl" default:"30m"`
	} `yaml:"session"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		Backend string        `yaml:"backend" default:"memory"`
		TTL     time.Duration `yaml:"ttl" default:"24h"`
		L1TTL   time.Duration `yaml:"l1_ttl" default:"10m"`
		Redis   struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR" default:"localhost:6379"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"astrochart"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Default returns a configuration populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes on top of the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// The API key may also come from API_KEY, the variable the hosted model docs use.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides tagged fields from the environment.
func ApplyEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("API_KEY")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is required")
	}
	if c.Chart.Size <= 0 {
		return fmt.Errorf("chart.size must be positive")
	}
	if !(c.Chart.InnerRadius > 0 && c.Chart.InnerRadius < c.Chart.ZodiacRadius && c.Chart.ZodiacRadius < c.Chart.OuterRadius) {
		return fmt.Errorf("chart radii must satisfy 0 < inner < zodiac < outer")
	}
	if c.Chart.OuterRadius > c.Chart.Size/2 {
		return fmt.Errorf("chart.outer_radius must fit the canvas")
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio must be in (0,1]")
	}
	return nil
}
