// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/waffle/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
)

// AppConfig holds the service configuration.
//
// Values come from command-line flags, ORPHANAGECARE_* environment variables
// (plus the legacy PORT and MONGODB_URI), a .env file, an optional config
// file and the defaults in appConfigKeys, in that order of precedence. The
// struct is passed to every lifecycle step.
type AppConfig struct {
	Env      string // "dev" or "prod"
	LogLevel string // zap level name

	// HTTP server (listens on all interfaces)
	HTTPPort          int
	CORSAllowedOrigin string // the single browser origin allowed to call the API

	// Login throttling; zero disables a check
	LoginIPLimit      int
	LoginAccountLimit int

	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name; empty means the one in MongoURI
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Store call deadlines and graceful shutdown
	TimeoutShort    time.Duration
	TimeoutMedium   time.Duration
	ShutdownTimeout time.Duration
}

// CoreConfig returns the server settings in the form waffle's server
// package serves from. Only plain HTTP is used; TLS terminates upstream.
func (c AppConfig) CoreConfig() *config.CoreConfig {
	return &config.CoreConfig{
		Env:      c.Env,
		LogLevel: c.LogLevel,
		HTTP: config.HTTPConfig{
			HTTPPort:          c.HTTPPort,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			ShutdownTimeout:   c.ShutdownTimeout,
		},
	}
}
