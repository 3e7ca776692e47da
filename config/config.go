package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DefaultServerAddr = ":8080"
	DefaultTimeout    = 60 * time.Second
)

// Config is the application configuration read from config.json plus environment.
type Config struct {
	LLM        LLMConfig `json:"llm"`
	ServerAddr string    `json:"server_addr,omitempty"`
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
	BaseURL        string `json:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Timeout is the per-attempt deadline for the model call.
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type envOverrides struct {
	Provider       string `env:"MARKETING_LLM_PROVIDER"`
	Model          string `env:"MARKETING_LLM_MODEL"`
	APIKey         string `env:"MARKETING_LLM_API_KEY"`
	BaseURL        string `env:"MARKETING_LLM_BASE_URL"`
	TimeoutSeconds int    `env:"MARKETING_LLM_TIMEOUT_SECONDS"`
	ServerAddr     string `env:"MARKETING_SERVER_ADDR"`
}

// Load reads the JSON file at path (optional), applies .env and environment
// overrides, fills defaults and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// env alone may be enough
		default:
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Provider != "" {
		cfg.LLM.Provider = o.Provider
	}
	if o.Model != "" {
		cfg.LLM.Model = o.Model
	}
	if o.APIKey != "" {
		cfg.LLM.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		cfg.LLM.BaseURL = o.BaseURL
	}
	if o.TimeoutSeconds > 0 {
		cfg.LLM.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.ServerAddr != "" {
		cfg.ServerAddr = o.ServerAddr
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "mock"
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultServerAddr
	}
}

// Validate checks provider-specific requirements.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "mock":
		return nil
	case "openai", "gemini":
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API and needs its endpoint.
		if c.LLM.BaseURL == "" {
			return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		if c.LLM.Model == "" {
			return errors.New("llm provider deepseek requires model")
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm provider %s requires api_key (or MARKETING_LLM_API_KEY)", c.LLM.Provider)
	}
	return nil
}
