package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotbook/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "plotbook", cfg.DB.User)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, int64(86400), cfg.S3.PresignExpiry)
	assert.Len(t, cfg.CORS.AllowedOrigins, 3)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PLOTBOOK_DB_HOST", "db.internal")
	t.Setenv("PLOTBOOK_DB_PORT", "6543")
	t.Setenv("PLOTBOOK_LOG_FORMAT", "json")
	t.Setenv("PLOTBOOK_CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PLOTBOOK_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}
