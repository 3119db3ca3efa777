package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	EnvironmentLocal      = "local"
	EnvironmentProduction = "production"
)

type Config struct {
	Environment string `yaml:"-"`

	Application ApplicationConfig `yaml:"application"`
	LogLevel    string            `yaml:"log_level" env:"LOG_LEVEL"`
	Export      ExportConfig      `yaml:"export"`
	Idempotency IdempotencyConfig `yaml:"idempotency"`
}

type ApplicationConfig struct {
	Host string `yaml:"host" env:"APP_HOST"`
	Port int    `yaml:"port" env:"APP_PORT"`
}

type ExportConfig struct {
	Dir            string        `yaml:"dir" env:"EXPORT_DIR"`
	FilenameFormat string        `yaml:"filename_format" env:"EXPORT_FILENAME_FORMAT"`
	Interval       time.Duration `yaml:"interval" env:"EXPORT_INTERVAL"`
}

type IdempotencyConfig struct {
	TTL time.Duration `yaml:"ttl" env:"IDEMPOTENCY_TTL"`
}

func defaults() Config {
	return Config{
		Environment: EnvironmentLocal,
		Application: ApplicationConfig{Host: "127.0.0.1", Port: 8000},
		LogLevel:    "info",
		Export:      ExportConfig{Dir: ".", FilenameFormat: "legacy"},
		Idempotency: IdempotencyConfig{TTL: 24 * time.Hour},
	}
}

// Load reads configuration/base.yaml, then configuration/{APP_ENVIRONMENT}.yaml,
// then applies environment variable overrides. Missing files are skipped.
func Load() (*Config, error) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "configuration"
	}
	cfg, err := LoadFrom(dir, os.Getenv("APP_ENVIRONMENT"))
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func LoadFrom(dir, environment string) (*Config, error) {
	environment, err := parseEnvironment(environment)
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	cfg.Environment = environment

	for _, name := range []string{"base.yaml", environment + ".yaml"} {
		if err := mergeFile(filepath.Join(dir, name), &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Application.Port < 0 || c.Application.Port > 65535 {
		return fmt.Errorf("application.port %d out of range", c.Application.Port)
	}
	switch c.Export.FilenameFormat {
	case "legacy", "fixed":
	default:
		return fmt.Errorf("export.filename_format %q must be legacy or fixed", c.Export.FilenameFormat)
	}
	if c.Export.Interval < 0 {
		return fmt.Errorf("export.interval must not be negative")
	}
	if c.Idempotency.TTL <= 0 {
		return fmt.Errorf("idempotency.ttl must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Application.Host, c.Application.Port)
}

func parseEnvironment(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", EnvironmentLocal:
		return EnvironmentLocal, nil
	case EnvironmentProduction:
		return EnvironmentProduction, nil
	default:
		return "", fmt.Errorf("%q is not a supported environment, use either %q or %q", s, EnvironmentLocal, EnvironmentProduction)
	}
}

func mergeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
