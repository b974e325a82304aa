package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.HTTP.Port)
	require.Equal(t, "videotube", cfg.DB.Name)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	require.Equal(t, 240*time.Hour, cfg.JWT.RefreshExpiry)
	require.True(t, cfg.Cookie.Secure)
	require.True(t, cfg.Media.DeleteReplaced)
	require.Equal(t, 20, cfg.RateLimit.AuthPerMinute)
	require.Empty(t, cfg.HTTP.TrustedProxies)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_URI", "mongodb://db:27017")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "mongodb://db:27017", cfg.DB.URI)
	require.Equal(t, "access", cfg.JWT.AccessSecret)
	require.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	require.Equal(t, "refresh", cfg.JWT.RefreshSecret)
	require.False(t, cfg.Cookie.Secure)
	require.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.HTTP.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		DB:  DBConfig{URI: "mongodb://localhost"},
		JWT: JWTConfig{AccessSecret: "a", RefreshSecret: "b", AccessExpiry: time.Minute, RefreshExpiry: time.Hour},
	}
	require.NoError(t, valid.Validate())

	missingURI := valid
	missingURI.DB.URI = ""
	require.ErrorContains(t, missingURI.Validate(), "db.uri")

	sameSecrets := valid
	sameSecrets.JWT.RefreshSecret = "a"
	require.ErrorContains(t, sameSecrets.Validate(), "must differ")

	noExpiry := valid
	noExpiry.JWT.AccessExpiry = 0
	require.ErrorContains(t, noExpiry.Validate(), "positive")

	badProxy := valid
	badProxy.HTTP.TrustedProxies = []string{"10.0.0.0/8", "not-an-ip"}
	require.ErrorContains(t, badProxy.Validate(), "http.trusted_proxies")
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.1.2.3/8", " 192.168.0.10 ", "", "::1"})
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	require.Equal(t, "10.0.0.0/8", prefixes[0].String())
	require.Equal(t, "192.168.0.10/32", prefixes[1].String())
	require.Equal(t, "::1/128", prefixes[2].String())

	prefixes, err = ParseTrustedProxies([]string{"bogus/99", "127.0.0.1"})
	require.Error(t, err)
	require.Len(t, prefixes, 1)
}
