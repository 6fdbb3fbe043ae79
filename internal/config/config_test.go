package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "recouvrement-service", cfg.App.Name)
	require.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	require.Equal(t, 30, cfg.Auth.AccessTokenTTLMin)
	require.Equal(t, 7, cfg.Auth.RefreshTokenTTLDays)
	require.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_DAYS", "1")
	t.Setenv("AUTH_JWT_ALGORITHM", "HS512")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_HOST", "127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 24*time.Hour, cfg.Auth.RefreshTokenTTL())
	require.Equal(t, "HS512", cfg.Auth.JWTAlgorithm)
	require.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
}

func TestInvalidIntsFallBack(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30, cfg.Auth.AccessTokenTTLMin)
}
