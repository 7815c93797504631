// Package config loads service configuration from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const keySize = 32

// Config is the full service configuration.
type Config struct {
	Environment string `env:"QUORUM_ENV" envDefault:"development"`

	Server   Server
	Log      Log
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	SMTP     SMTP
	Auth     Auth
	Ballot   Ballot
	Cleanup  Cleanup
	Retry    Retry
	Timeouts Timeouts
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"QUORUM_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"QUORUM_REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"QUORUM_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// Per-IP budget for OTP and login endpoints.
	RateLimitPerMinute int `env:"QUORUM_RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int `env:"QUORUM_RATE_LIMIT_BURST" envDefault:"10"`
	// AdminToken guards /admin routes. Empty disables them.
	AdminToken string `env:"ADMIN_TOKEN"`
}

type Log struct {
	Level  string `env:"QUORUM_LOG_LEVEL" envDefault:"info"`
	Format string `env:"QUORUM_LOG_FORMAT" envDefault:"json"`
}

// Database selects the store. An empty URL keeps everything in memory.
type Database struct {
	URL          string        `env:"DATABASE_URL"`
	MaxOpenConns int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLife  time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate  bool          `env:"DATABASE_AUTO_MIGRATE" envDefault:"true"`
}

// RedisConfig enables the distributed cleanup lock when URL is set.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Kafka enables the audit publisher when Brokers is non-empty.
type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"quorum.audit"`
}

// SMTP enables real email delivery when Host is set; otherwise mail is logged.
type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"no-reply@quorum.local"`
}

type Auth struct {
	OTPTTL         time.Duration `env:"OTP_TTL" envDefault:"5m"`
	OTPMaxAttempts int           `env:"OTP_MAX_ATTEMPTS" envDefault:"5"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// Owner passwords are hashed at this bcrypt cost.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`
}

// Ballot holds the change window and the ledger keys. Keys are hex encoded
// 32-byte values; in development missing keys are generated at startup.
type Ballot struct {
	ChangeWindow       time.Duration `env:"VOTE_CHANGE_WINDOW" envDefault:"10m"`
	MaxChanges         int           `env:"VOTE_MAX_CHANGES" envDefault:"3"`
	EncryptionKeyHex   string        `env:"VOTE_ENCRYPTION_KEY"`
	SigningKeyHex      string        `env:"VOTE_SIGNING_KEY"`
	ReceiptTokenKeyHex string        `env:"RECEIPT_TOKEN_KEY"`
	ReceiptTokenTTL    time.Duration `env:"RECEIPT_TOKEN_TTL" envDefault:"2160h"`

	EncryptionKey   []byte
	SigningKey      []byte
	ReceiptTokenKey []byte
}

type Cleanup struct {
	Interval        time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
	CategoryTimeout time.Duration `env:"CLEANUP_CATEGORY_TIMEOUT" envDefault:"30s"`
	SessionGrace    time.Duration `env:"CLEANUP_SESSION_GRACE" envDefault:"24h"`
	TokenGrace      time.Duration `env:"CLEANUP_TOKEN_GRACE" envDefault:"168h"`
	OTPGrace        time.Duration `env:"CLEANUP_OTP_GRACE" envDefault:"1h"`
	LockTTL         time.Duration `env:"CLEANUP_LOCK_TTL" envDefault:"2m"`
}

// Retry bounds compare-and-swap retry loops.
type Retry struct {
	MaxAttempts     uint          `env:"RETRY_MAX_ATTEMPTS" envDefault:"4"`
	InitialInterval time.Duration `env:"RETRY_INITIAL_INTERVAL" envDefault:"10ms"`
	MaxInterval     time.Duration `env:"RETRY_MAX_INTERVAL" envDefault:"200ms"`
}

type Timeouts struct {
	Store time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	Email time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment and resolves derived values.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether development conveniences are disabled.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) resolve() error {
	if c.Ballot.ChangeWindow <= 0 {
		return errors.New("VOTE_CHANGE_WINDOW must be positive")
	}
	if c.Ballot.MaxChanges < 0 {
		return errors.New("VOTE_MAX_CHANGES must not be negative")
	}
	if c.Auth.OTPMaxAttempts < 1 {
		return errors.New("OTP_MAX_ATTEMPTS must be at least 1")
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New("RETRY_MAX_ATTEMPTS must be at least 1")
	}

	var err error
	if c.Ballot.EncryptionKey, err = c.key("VOTE_ENCRYPTION_KEY", c.Ballot.EncryptionKeyHex); err != nil {
		return err
	}
	if c.Ballot.SigningKey, err = c.key("VOTE_SIGNING_KEY", c.Ballot.SigningKeyHex); err != nil {
		return err
	}
	if c.Ballot.ReceiptTokenKey, err = c.key("RECEIPT_TOKEN_KEY", c.Ballot.ReceiptTokenKeyHex); err != nil {
		return err
	}
	return nil
}

func (c *Config) key(name, value string) ([]byte, error) {
	if value == "" {
		if c.IsProduction() {
			return nil, fmt.Errorf("%s is required in production", name)
		}
		k := make([]byte, keySize)
		if _, err := rand.Read(k); err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		return k, nil
	}
	k, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be hex encoded: %w", name, err)
	}
	if len(k) != keySize {
		return nil, fmt.Errorf("%s must decode to %d bytes, got %d", name, keySize, len(k))
	}
	return k, nil
}
