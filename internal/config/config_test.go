package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthvibe")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthvibe")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, time.Hour, cfg.ResetTokenTTL)
	require.Equal(t, "HealthVibe", cfg.TOTPIssuer)
}

func TestLoad_OverridesAndLists(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthvibe")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16")
	t.Setenv("EMAIL_SERVER_PORT", "\"2525\"")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
	require.Equal(t, 2525, cfg.Email.Port)
}

func TestLoad_RejectsBadBcryptCost(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthvibe")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BCRYPT_COST", "99")

	_, err := Load()
	require.Error(t, err)
}
