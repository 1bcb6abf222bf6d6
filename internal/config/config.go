// Package config loads service settings from the environment and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string        `yaml:"port"`
	DatabaseDriver string        `yaml:"database_driver"`
	DatabaseURL    string        `yaml:"database_url"`
	RedisURL       string        `yaml:"redis_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	FreeTrialLimit int           `yaml:"free_trial_limit"`
	GenerateRate   int           `yaml:"generate_rate_per_minute"`
	LLM            LLMConfig     `yaml:"llm"`
	LLMTimeout     time.Duration `yaml:"llm_timeout"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // openai | anthropic
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

func defaults() *Config {
	return &Config{
		Port:           "8080",
		DatabaseDriver: DriverPostgres,
		AllowedOrigins: []string{"http://localhost:3000"},
		FreeTrialLimit: 3,
		GenerateRate:   10,
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			BaseURL:  "https://llm-proxy.densematrix.ai",
			Model:    "gemini-2.5-flash",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and finally environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.DatabaseDriver, "DATABASE_DRIVER")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.BaseURL, "LLM_PROXY_URL")
	setString(&c.LLM.APIKey, "LLM_PROXY_KEY")
	setString(&c.LLM.Model, "LLM_MODEL")

	if c.LLM.Provider == ProviderAnthropic {
		setString(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
	}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		for _, origin := range strings.Split(frontendURL, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}

	if err := setInt(&c.FreeTrialLimit, "FREE_TRIAL_LIMIT"); err != nil {
		return err
	}
	if err := setInt(&c.GenerateRate, "GENERATE_RATE_PER_MINUTE"); err != nil {
		return err
	}

	if raw := os.Getenv("LLM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid LLM_TIMEOUT %q: %w", raw, err)
		}
		c.LLMTimeout = d
	}

	return nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.FreeTrialLimit < 0 {
		return fmt.Errorf("FREE_TRIAL_LIMIT must not be negative, got %d", c.FreeTrialLimit)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*dst = v
	return nil
}
