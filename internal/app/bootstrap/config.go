// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/dalemusser/waffle/logging"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment variable the service reads.
const EnvPrefix = "ORPHANAGECARE"

type configKey struct {
	Name    string
	Default any
	Desc    string
	Legacy  string // unprefixed variable honoured after the prefixed one
}

// appConfigKeys defines the configuration keys. Each can be set with:
//   - Command-line flags: --mongo_uri, --http_port, etc.
//   - Environment variables: ORPHANAGECARE_MONGO_URI, ORPHANAGECARE_HTTP_PORT, etc.
//   - Config files: mongo_uri, http_port, etc.
var appConfigKeys = []configKey{
	{Name: "env", Default: "dev", Desc: "Runtime environment: 'dev' or 'prod'"},
	{Name: "log_level", Default: "info", Desc: "Log level (debug, info, warn, error)"},

	{Name: "http_port", Default: 5001, Desc: "HTTP listen port", Legacy: "PORT"},
	{Name: "login_ip_limit", Default: 20, Desc: "Login attempts allowed per client IP per minute (0 disables)"},
	{Name: "login_account_limit", Default: 10, Desc: "Login attempts allowed per account per five minutes (0 disables)"},
	{Name: "cors_allowed_origin", Default: "https://orphanage-frontened1.onrender.com", Desc: "Browser origin allowed by CORS"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI", Legacy: "MONGODB_URI"},
	{Name: "mongo_database", Default: "", Desc: "MongoDB database name (blank means the one in the URI)"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size"},

	{Name: "timeout_short", Default: 5 * time.Second, Desc: "Deadline for single-document store calls"},
	{Name: "timeout_medium", Default: 10 * time.Second, Desc: "Deadline for listing queries"},
	{Name: "shutdown_timeout", Default: 15 * time.Second, Desc: "Grace period for in-flight requests on shutdown"},
}

// LoadConfig builds AppConfig from args (without the program name), the
// environment, an optional .env file in the working directory and an
// optional --config file.
//
// Merging precedence: flags > env > .env > config file > defaults.
func LoadConfig(args []string) (AppConfig, error) {
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	flags := pflag.NewFlagSet("orphanagecare", pflag.ContinueOnError)
	configFile := flags.String("config", "", "Path to a YAML, JSON or TOML config file")
	for _, k := range appConfigKeys {
		switch d := k.Default.(type) {
		case string:
			flags.String(k.Name, d, k.Desc)
		case int:
			flags.Int(k.Name, d, k.Desc)
		case time.Duration:
			flags.Duration(k.Name, d, k.Desc)
		}
	}
	if err := flags.Parse(args); err != nil {
		return AppConfig{}, err
	}

	v := viper.New()
	for _, k := range appConfigKeys {
		v.SetDefault(k.Name, k.Default)
		envs := []string{EnvPrefix + "_" + strings.ToUpper(k.Name)}
		if k.Legacy != "" {
			envs = append(envs, k.Legacy)
		}
		if err := v.BindEnv(append([]string{k.Name}, envs...)...); err != nil {
			return AppConfig{}, err
		}
	}
	if err := v.BindPFlags(flags); err != nil {
		return AppConfig{}, err
	}
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return AppConfig{
		Env:               strings.ToLower(v.GetString("env")),
		LogLevel:          v.GetString("log_level"),
		HTTPPort:          v.GetInt("http_port"),
		CORSAllowedOrigin: v.GetString("cors_allowed_origin"),
		LoginIPLimit:      v.GetInt("login_ip_limit"),
		LoginAccountLimit: v.GetInt("login_account_limit"),
		MongoURI:          v.GetString("mongo_uri"),
		MongoDatabase:     v.GetString("mongo_database"),
		MongoMaxPoolSize:  uint64(v.GetInt("mongo_max_pool_size")),
		MongoMinPoolSize:  uint64(v.GetInt("mongo_min_pool_size")),
		TimeoutShort:      v.GetDuration("timeout_short"),
		TimeoutMedium:     v.GetDuration("timeout_medium"),
		ShutdownTimeout:   v.GetDuration("shutdown_timeout"),
	}, nil
}

// ValidateConfig rejects configurations that cannot start.
//
// The MongoDB URI format is checked to catch configuration errors early,
// before attempting to connect.
func ValidateConfig(appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if !logging.IsValidLogLevel(appCfg.LogLevel) {
		return fmt.Errorf("log_level %q is not a zap level", appCfg.LogLevel)
	}
	if appCfg.HTTPPort < 1 || appCfg.HTTPPort > 65535 {
		return fmt.Errorf("http_port %d out of range", appCfg.HTTPPort)
	}
	if appCfg.Env != "dev" && appCfg.Env != "prod" {
		return fmt.Errorf("env must be 'dev' or 'prod', got %q", appCfg.Env)
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	return nil
}
