package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	CorsConfig
	GoogleConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
	GetAppURL() string
	GetDatabaseURL() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Google
	Security
}

// Load reads an optional .env file, then the environment, on top of the
// defaults. A nil viper creates a fresh instance; the CLI passes its own so
// that bound flags take precedence.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	v.AutomaticEnv()

	v.SetDefault(portEnvVar, "8080")
	v.SetDefault(appNameVar, "Photo Wall")
	v.SetDefault(envVar, "DEV")
	v.SetDefault(appURLVar, "http://localhost:8080")
	v.SetDefault(logLevelVar, "info")
	v.SetDefault(pickerSessionTTLVar, "1h")
	v.SetDefault(allowedOriginsVar, "")

	c := mainConfig{
		EnvVars:  EnvVars{v: v},
		Cors:     Cors{v: v},
		Google:   Google{v: v},
		Security: Security{v: v},
	}

	if c.IsProduction() && len(c.GetSessionSecret()) < minSessionSecretLen {
		return nil, fmt.Errorf("config: %s must be at least %d bytes in production", sessionSecretVar, minSessionSecretLen)
	}
	return c, nil
}

// ValidateServe checks the settings the HTTP server cannot start without.
func ValidateServe(c Config) error {
	if c.GetDatabaseURL() == "" {
		return fmt.Errorf("config: %s is required", databaseURLVar)
	}
	if c.GetPickerSessionTTL() <= 0 {
		return fmt.Errorf("config: %s must be a positive duration", pickerSessionTTLVar)
	}
	return nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
