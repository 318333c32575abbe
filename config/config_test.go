package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_EXPIRES", "BCRYPT_COST", "ENVIRONMENT", "MIGRATE_ON_START"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := New()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "24h", cfg.JwtExpires)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.MigrateOnStart)
	assert.False(t, cfg.IsProduction())
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DSN", "postgres://court:court@db:5432/court")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES", "1h")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MIGRATE_ON_START", "false")

	cfg := New()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://court:court@db:5432/court", cfg.Dsn)
	assert.Equal(t, "s3cret", cfg.JwtSecret)
	assert.Equal(t, "1h", cfg.JwtExpires)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.MigrateOnStart)
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug", Environment: "development"}

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	assert.Same(t, logger, zap.L())
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(&Config{LogLevel: "loud"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}
