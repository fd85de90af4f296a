package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}

	u, err := url.Parse(c.Readwise.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("readwise.base_url must be an absolute URL (got %q)", c.Readwise.BaseURL)
	}
	if c.Readwise.Timeout <= 0 {
		return fmt.Errorf("readwise.timeout must be > 0 (got %s)", c.Readwise.Timeout)
	}
	if c.Readwise.MaxRetries < 1 {
		return fmt.Errorf("readwise.max_retries must be >= 1 (got %d)", c.Readwise.MaxRetries)
	}
	if c.Readwise.RetryDelay <= 0 {
		return fmt.Errorf("readwise.retry_delay must be > 0 (got %s)", c.Readwise.RetryDelay)
	}

	if n := len(c.Session.HashKey); n > 0 && n < 32 {
		return fmt.Errorf("session.hash_key must be at least 32 bytes (got %d)", n)
	}
	switch len(c.Session.BlockKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("session.block_key must be 16, 24 or 32 bytes (got %d)", len(c.Session.BlockKey))
	}

	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate_limit.rps must be > 0 (got %v)", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be >= 1 (got %d)", c.RateLimit.Burst)
	}

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", c.Log.Format)
	}

	return nil
}
