package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	if c.Server.ScoreRatePerMinute <= 0 {
		return fmt.Errorf("server.score_rate_per_minute must be > 0 (got %d)", c.Server.ScoreRatePerMinute)
	}
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	if err := c.Practice.validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	if err := c.Explanation.validate(); err != nil {
		return fmt.Errorf("explanation: %w", err)
	}
	if !strings.HasPrefix(c.Telemetry.MetricsPath, "/") {
		return fmt.Errorf("telemetry.metrics_path must start with / (got %q)", c.Telemetry.MetricsPath)
	}
	if c.Retention.ArchivedAttemptDays <= 0 {
		return fmt.Errorf("retention.archived_attempt_days must be > 0 (got %d)", c.Retention.ArchivedAttemptDays)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in 0..max_conns (got %d)", d.MinConns)
	}
	return nil
}

func (p *PracticeConfig) validate() error {
	if p.MaxSaveAttempts < 1 || p.MaxSaveAttempts > 10 {
		return fmt.Errorf("max_save_attempts must be in 1..10 (got %d)", p.MaxSaveAttempts)
	}
	if p.ExplainConcurrency < 1 || p.ExplainConcurrency > 64 {
		return fmt.Errorf("explain_concurrency must be in 1..64 (got %d)", p.ExplainConcurrency)
	}
	if p.MaxTextRunes < 1 {
		return fmt.Errorf("max_text_runes must be > 0 (got %d)", p.MaxTextRunes)
	}
	return nil
}

func (e *ExplanationConfig) validate() error {
	u, err := url.Parse(e.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", e.BaseURL)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", e.Timeout)
	}
	if e.CacheSize < 1 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", e.CacheSize)
	}
	if e.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", e.CacheTTL)
	}
	return nil
}
