package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	iauth "github.com/teambuilder-dev/teambuilder/internal/auth"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)
	require.Equal(t, "teambuilder", cfg.Database.Postgres.Database)

	require.Equal(t, "jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "teambuilder-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)

	require.True(t, cfg.AI.Enabled())
	require.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	require.Equal(t, 20*time.Second, cfg.AI.Timeout)
	require.Equal(t, 8, cfg.AI.RosterLimit)

	require.Equal(t, "@every 5m", cfg.Maintenance.Schedule)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)
	require.False(t, cfg.AI.Enabled())
	require.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	require.Equal(t, "@every 10m", cfg.Maintenance.Schedule)
}

func TestJWTServiceConfigAdapter(t *testing.T) {
	cfg := AuthConfig{
		JWT: JWTSettings{Secret: "secret", Issuer: "issuer", TTL: 30 * time.Minute},
	}
	require.Equal(t, iauth.JWTConfig{
		Secret:         "secret",
		Issuer:         "issuer",
		AccessTokenTTL: 30 * time.Minute,
	}, cfg.JWTServiceConfig())

	var empty AuthConfig
	require.Equal(t, iauth.DefaultAccessTokenTTL, empty.JWTServiceConfig().AccessTokenTTL)
}
