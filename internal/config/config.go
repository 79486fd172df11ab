package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"POSTGRES_"`
	KDF      KDF      `envPrefix:"KDF_"`
	CORS     CORS     `envPrefix:"CORS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Address            string        `env:"ADDRESS" envDefault:":8080"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	ReadHeaderTimeout  time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout        time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database contains database connection parameters.
// DSN has no default: an unset POSTGRES_DATABASE_URL is reported at startup.
type Database struct {
	DSN                   string        `env:"DATABASE_URL"`
	MaxConns              int32         `env:"MAX_CONNS" envDefault:"10"`
	MinConns              int32         `env:"MIN_CONNS" envDefault:"0"`
	AcquireTimeout        time.Duration `env:"ACQUIRE_TIMEOUT" envDefault:"5s"`
	MaxConnLifetime       time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"30m"`
	MaxConnIdleTime       time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"5m"`
	RequireTLS            bool          `env:"REQUIRE_TLS" envDefault:"true"`
	TLSInsecureSkipVerify bool          `env:"TLS_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// KDF contains Argon2id parameters used to hash credentials.
type KDF struct {
	Time   uint32 `env:"TIME" envDefault:"3"`
	MemKiB uint32 `env:"MEM" envDefault:"65536"`
	Par    uint8  `env:"PAR" envDefault:"2"`
}

// CORS contains the cross-origin policy.
type CORS struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"MAX_AGE" envDefault:"300"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// HasDSN reports whether the database connection string is set.
func (d Database) HasDSN() bool {
	return d.DSN != ""
}
