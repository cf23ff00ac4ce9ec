package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 5001, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)

	core := cfg.CoreConfig()
	assert.Equal(t, 5001, core.HTTP.HTTPPort)
	assert.False(t, core.HTTP.UseHTTPS)
	assert.Equal(t, 15*time.Second, core.HTTP.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, core.HTTP.ReadHeaderTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "https://orphanage-frontened1.onrender.com", cfg.CORSAllowedOrigin)
	assert.Equal(t, uint64(100), cfg.MongoMaxPoolSize)
	assert.Equal(t, 20, cfg.LoginIPLimit)
	assert.Equal(t, 10, cfg.LoginAccountLimit)
	assert.Equal(t, 5*time.Second, cfg.TimeoutShort)
	assert.Equal(t, 10*time.Second, cfg.TimeoutMedium)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_LegacyEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONGODB_URI", "mongodb://db.example:27017/orphans")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "mongodb://db.example:27017/orphans", cfg.MongoURI)
}

func TestLoadConfig_PrefixedEnvBeatsLegacy(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ORPHANAGECARE_HTTP_PORT", "9090")
	t.Setenv("ORPHANAGECARE_TIMEOUT_SHORT", "750ms")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 750*time.Millisecond, cfg.TimeoutShort)
}

func TestLoadConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv("ORPHANAGECARE_HTTP_PORT", "9090")

	cfg, err := LoadConfig([]string{"--http_port=7070", "--env=prod", "--cors_allowed_origin=http://localhost:3000"})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTPPort)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigin)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mongo_database: orphanage_db\nlog_level: debug\n"), 0o600))

	cfg, err := LoadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "orphanage_db", cfg.MongoDatabase)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	_, err := LoadConfig([]string{"--no_such_flag"})
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := AppConfig{
		Env:              "dev",
		LogLevel:         "info",
		HTTPPort:         5001,
		MongoURI:         "mongodb://localhost:27017",
		MongoMaxPoolSize: 100,
	}
	require.NoError(t, ValidateConfig(valid, zap.NewNop()))

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"bad uri", func(c *AppConfig) { c.MongoURI = "http://localhost" }},
		{"port zero", func(c *AppConfig) { c.HTTPPort = 0 }},
		{"port too large", func(c *AppConfig) { c.HTTPPort = 70000 }},
		{"unknown env", func(c *AppConfig) { c.Env = "staging" }},
		{"unknown log level", func(c *AppConfig) { c.LogLevel = "loud" }},
		{"pool sizes inverted", func(c *AppConfig) { c.MongoMinPoolSize = 200 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, ValidateConfig(cfg, zap.NewNop()))
		})
	}
}

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		cfg  AppConfig
		want string
	}{
		{AppConfig{MongoURI: "mongodb://localhost:27017", MongoDatabase: "explicit"}, "explicit"},
		{AppConfig{MongoURI: "mongodb://localhost:27017/fromuri"}, "fromuri"},
		{AppConfig{MongoURI: "mongodb://localhost:27017"}, "test"},
	}
	for _, tt := range tests {
		got, err := databaseName(tt.cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		logger, err := NewLogger(env, "warn")
		require.NoError(t, err, env)
		assert.False(t, logger.Core().Enabled(zap.InfoLevel), env)
		assert.True(t, logger.Core().Enabled(zap.WarnLevel), env)
	}
}
