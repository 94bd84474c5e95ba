package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Reputation ReputationConfig `yaml:"reputation"`
	Retry      RetryConfig      `yaml:"retry"`
	Outbox     OutboxConfig     `yaml:"outbox"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StorageConfig selects the data gateway implementation.
type StorageConfig struct {
	Driver         string `yaml:"driver"           env:"STORAGE_DRIVER"           env-default:"postgres"`
	MigrateOnStart bool   `yaml:"migrate_on_start" env:"STORAGE_MIGRATE_ON_START"`
}

// AuthConfig holds bearer token validation settings. Tokens are issued by
// the identity provider; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"askdev"`
}

// ReputationConfig holds the reputation weight table and the display floor.
type ReputationConfig struct {
	UpvoteReceived   int64 `yaml:"upvote_received"   env:"REPUTATION_UPVOTE_RECEIVED"   env-default:"10"`
	DownvoteReceived int64 `yaml:"downvote_received" env:"REPUTATION_DOWNVOTE_RECEIVED" env-default:"-2"`
	AnswerAccepted   int64 `yaml:"answer_accepted"   env:"REPUTATION_ANSWER_ACCEPTED"   env-default:"15"`
	DownvoteCast     int64 `yaml:"downvote_cast"     env:"REPUTATION_DOWNVOTE_CAST"     env-default:"0"`
	Floor            int64 `yaml:"floor"             env:"REPUTATION_FLOOR"             env-default:"0"`
}

// RetryConfig holds the compare-and-swap retry policy.
type RetryConfig struct {
	MaxRetries      uint64        `yaml:"max_retries"      env:"RETRY_MAX_RETRIES"      env-default:"3"`
	InitialInterval time.Duration `yaml:"initial_interval" env:"RETRY_INITIAL_INTERVAL" env-default:"20ms"`
	MaxInterval     time.Duration `yaml:"max_interval"     env:"RETRY_MAX_INTERVAL"     env-default:"400ms"`
	Multiplier      float64       `yaml:"multiplier"       env:"RETRY_MULTIPLIER"       env-default:"2"`
}

// OutboxConfig holds the redelivery relay settings.
type OutboxConfig struct {
	Interval  time.Duration `yaml:"interval"   env:"OUTBOX_INTERVAL"   env-default:"5s"`
	BatchSize int           `yaml:"batch_size" env:"OUTBOX_BATCH_SIZE" env-default:"100"`
}

// RateLimitConfig holds the per-user vote rate limit. Zero disables it.
type RateLimitConfig struct {
	VotesPerMinute int `yaml:"votes_per_minute" env:"RATE_LIMIT_VOTES_PER_MINUTE" env-default:"60"`
	Burst          int `yaml:"burst"            env:"RATE_LIMIT_BURST"            env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
