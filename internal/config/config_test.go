package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/photo-wall/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := config.Load(viper.New())
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.False(t, c.IsProduction())
	require.Equal(t, "http://localhost:8080", c.GetAppURL())
	require.Equal(t, time.Hour, c.GetPickerSessionTTL())
	require.Equal(t, 7*24*time.Hour, c.GetSessionTTL())
	require.Equal(t, 10*time.Minute, c.GetStateTTL())
	require.NotEmpty(t, c.GetSessionSecret())
	require.Empty(t, c.GetAllowedOrigins())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", ":9090")
	t.Setenv("APP_URL", "https://wall.example.com/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("PICKER_SESSION_TTL", "30m")
	t.Setenv("GOOGLE_CLIENT_ID", "client-1")

	c, err := config.Load(viper.New())
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "https://wall.example.com", c.GetAppURL())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example.com"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("https://c.example.com"))
	require.Equal(t, 30*time.Minute, c.GetPickerSessionTTL())
	require.Equal(t, "client-1", c.GetGoogleClientID())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := config.Load(viper.New())
	require.Error(t, err)
	require.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestValidateServe(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := config.Load(viper.New())
	require.NoError(t, err)
	require.ErrorContains(t, config.ValidateServe(c), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/photowall")
	c, err = config.Load(viper.New())
	require.NoError(t, err)
	require.NoError(t, config.ValidateServe(c))
}
