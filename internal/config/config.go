package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Readwise  ReadwiseConfig  `yaml:"readwise"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the local HTTP proxy settings.
type ServerConfig struct {
	Port            int           `yaml:"port"             env:"PORT"             env-default:"8080"`
	AllowedOrigins  string        `yaml:"allowed_origins"  env:"ALLOWED_ORIGINS"  env-default:"http://localhost:5173,http://localhost:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"1m"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// ReadwiseConfig holds the outbound client settings.
type ReadwiseConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"READWISE_BASE_URL"     env-default:"https://readwise.io"`
	Timeout     time.Duration `yaml:"timeout"      env:"READWISE_TIMEOUT"      env-default:"30s"`
	MaxRetries  int           `yaml:"max_retries"  env:"READWISE_MAX_RETRIES"  env-default:"5"`
	RetryDelay  time.Duration `yaml:"retry_delay"  env:"READWISE_RETRY_DELAY"  env-default:"1500ms"`
	AccessToken string        `yaml:"access_token" env:"ACCESS_TOKEN"`
}

// SessionConfig holds the cookie signing keys.
type SessionConfig struct {
	HashKey      string `yaml:"hash_key"      env:"SESSION_HASH_KEY"`
	BlockKey     string `yaml:"block_key"     env:"SESSION_BLOCK_KEY"`
	CookieSecure bool   `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"true"`
}

// RateLimitConfig holds the per-client inbound limiter settings.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"3"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// Origins splits AllowedOrigins on commas, dropping blanks.
func (s ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
