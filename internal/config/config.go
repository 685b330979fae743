package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	Practice    PracticeConfig    `yaml:"practice"`
	Explanation ExplanationConfig `yaml:"explanation"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Retention   RetentionConfig   `yaml:"retention"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,If-Match"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ServerConfig holds HTTP server settings. ScoreRatePerMinute limits
// scoring requests per learner, or per client IP when anonymous.
type ServerConfig struct {
	Host               string        `yaml:"host"                  env:"SERVER_HOST"                  env-default:"0.0.0.0"`
	Port               int           `yaml:"port"                  env:"SERVER_PORT"                  env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout"          env:"SERVER_READ_TIMEOUT"          env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout"         env:"SERVER_WRITE_TIMEOUT"         env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"          env:"SERVER_IDLE_TIMEOUT"          env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"      env:"SERVER_SHUTDOWN_TIMEOUT"      env-default:"10s"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"        env:"SERVER_MAX_BODY_BYTES"        env-default:"1048576"`
	ScoreRatePerMinute int           `yaml:"score_rate_per_minute" env:"SERVER_SCORE_RATE_PER_MINUTE" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"5s"`
}

// AuthConfig holds access token validation settings. Tokens are issued by
// the account service; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"shadowing"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// PracticeConfig holds practice service limits.
type PracticeConfig struct {
	MaxSaveAttempts    int `yaml:"max_save_attempts"   env:"PRACTICE_MAX_SAVE_ATTEMPTS"   env-default:"3"`
	ExplainConcurrency int `yaml:"explain_concurrency" env:"PRACTICE_EXPLAIN_CONCURRENCY" env-default:"4"`
	MaxTextRunes       int `yaml:"max_text_runes"      env:"PRACTICE_MAX_TEXT_RUNES"      env-default:"20000"`
}

// ExplanationConfig configures the dictionary lookup and its cache.
type ExplanationConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"EXPLANATION_BASE_URL"    env-default:"https://api.dictionaryapi.dev/api/v2/entries"`
	Timeout    time.Duration `yaml:"timeout"     env:"EXPLANATION_TIMEOUT"     env-default:"5s"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"EXPLANATION_RETRY_DELAY" env-default:"500ms"`
	CacheSize  int           `yaml:"cache_size"  env:"EXPLANATION_CACHE_SIZE"  env-default:"10000"`
	CacheTTL   time.Duration `yaml:"cache_ttl"   env:"EXPLANATION_CACHE_TTL"   env-default:"24h"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" env:"TELEMETRY_SERVICE_NAME" env-default:"shadowing"`
	MetricsPath string `yaml:"metrics_path" env:"TELEMETRY_METRICS_PATH" env-default:"/metrics"`
}

// RetentionConfig controls how long superseded attempts are kept.
type RetentionConfig struct {
	ArchivedAttemptDays int `yaml:"archived_attempt_days" env:"RETENTION_ARCHIVED_ATTEMPT_DAYS" env-default:"90"`
}

// ArchivedAttemptTTL returns ArchivedAttemptDays as a duration.
func (r RetentionConfig) ArchivedAttemptTTL() time.Duration {
	return time.Duration(r.ArchivedAttemptDays) * 24 * time.Hour
}
