package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	appURLVar      = "APP_URL"
	databaseURLVar = "DATABASE_URL"
	logLevelVar    = "LOG_LEVEL"

	productionEnv = "production"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.v.GetString(portEnvVar)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameVar)
}

func (e EnvVars) GetEnv() string {
	return e.v.GetString(envVar)
}

func (e EnvVars) IsProduction() bool {
	return strings.EqualFold(e.GetEnv(), productionEnv)
}

// GetAppURL returns the public origin of the web app (e.g. "https://wall.example.com").
// Every post-login and error redirect is built on it.
func (e EnvVars) GetAppURL() string {
	return strings.TrimRight(e.v.GetString(appURLVar), "/")
}

func (e EnvVars) GetDatabaseURL() string {
	return e.v.GetString(databaseURLVar)
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(logLevelVar)
}
