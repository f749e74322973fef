package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type EndpointConfig struct {
	URL         string `yaml:"url"`           // Energy-summary URL
	Username    string `yaml:"username"`      // Basic-auth user
	Password    string `yaml:"password"`      // Basic-auth password (prefer password_env)
	PasswordEnv string `yaml:"password_env"`  // Env var holding the password
	TimeoutSec  int    `yaml:"timeout_sec"`   // Request timeout (default 30)
	CacheTTLSec int    `yaml:"cache_ttl_sec"` // Summary cache TTL (default 300)
}

type AssistantConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "compatible" or "canned"
	APIKey    string `yaml:"api_key"`     // Provider key (prefer api_key_env)
	APIKeyEnv string `yaml:"api_key_env"` // Env var holding the key
	BaseURL   string `yaml:"base_url"`    // OpenAI-compatible base URL (provider "compatible")
	Model     string `yaml:"model"`       // Chat model name
}

type AuthConfig struct {
	Enabled bool     `yaml:"enabled"` // Enable API key authentication
	Keys    []string `yaml:"keys"`    // Valid API keys
}

type RateLimitConfig struct {
	Enabled        bool `yaml:"enabled"`          // Enable rate limiting
	RequestsPerMin int  `yaml:"requests_per_min"` // Max requests per minute per IP/key
	BurstSize      int  `yaml:"burst_size"`       // Burst allowance
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"` // Enable Prometheus metrics at /metrics
}

type DashboardConfig struct {
	Enabled  bool   `yaml:"enabled"`  // Enable web dashboard at /dashboard
	Password string `yaml:"password"` // Optional password to protect dashboard
}

type SessionConfig struct {
	MaxIdleMin int `yaml:"max_idle_min"` // Idle minutes before a chat session is evicted (default 60)
}

type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text" (default "text")
}

type Config struct {
	ListenAddr string          `yaml:"listen_addr"` // Service listen address (e.g. ":8000")
	Endpoint   EndpointConfig  `yaml:"endpoint"`
	Assistant  AssistantConfig `yaml:"assistant"`
	Auth       AuthConfig      `yaml:"auth"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
	Metrics    MetricsConfig   `yaml:"metrics"`
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Session    SessionConfig   `yaml:"session"`
	Logging    LoggingConfig   `yaml:"logging"`

	configPath string `yaml:"-"` // Path to config file (set during Load)
}

// ConfigPath returns the path to the loaded config file.
func (c *Config) ConfigPath() string { return c.configPath }

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{
		ListenAddr: ":8000",
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Endpoint.URL == "" {
		return nil, fmt.Errorf("endpoint.url is required")
	}
	if cfg.Endpoint.TimeoutSec == 0 {
		cfg.Endpoint.TimeoutSec = 30
	}
	if cfg.Endpoint.CacheTTLSec == 0 {
		cfg.Endpoint.CacheTTLSec = 300
	}
	if cfg.Endpoint.PasswordEnv != "" {
		if v := os.Getenv(cfg.Endpoint.PasswordEnv); v != "" {
			cfg.Endpoint.Password = v
		}
	}

	switch cfg.Assistant.Provider {
	case "":
		cfg.Assistant.Provider = "canned"
	case "openai", "compatible", "canned":
	default:
		return nil, fmt.Errorf("assistant.provider must be openai, compatible or canned (got %q)", cfg.Assistant.Provider)
	}
	if cfg.Assistant.APIKeyEnv != "" {
		if v := os.Getenv(cfg.Assistant.APIKeyEnv); v != "" {
			cfg.Assistant.APIKey = v
		}
	}
	if cfg.Assistant.Provider == "compatible" && cfg.Assistant.BaseURL == "" {
		return nil, fmt.Errorf("assistant.base_url is required for provider \"compatible\"")
	}

	// Defaults for rate limiting
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMin == 0 {
		cfg.RateLimit.RequestsPerMin = 60
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.BurstSize == 0 {
		cfg.RateLimit.BurstSize = 10
	}

	if cfg.Session.MaxIdleMin == 0 {
		cfg.Session.MaxIdleMin = 60
	}

	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	cfg.configPath = path

	return cfg, nil
}
