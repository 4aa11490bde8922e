package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	sessionSecretVar    = "SESSION_SECRET"
	pickerSessionTTLVar = "PICKER_SESSION_TTL"

	minSessionSecretLen = 32
	devSessionSecret    = "photo-wall-dev-secret-do-not-use-in-production"
)

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetSessionTTL() time.Duration
	GetStateTTL() time.Duration
	GetPickerSessionTTL() time.Duration
}

type Security struct {
	v *viper.Viper
}

var _ SecurityConfig = Security{}

// GetSessionSecret returns the key material for signing the OAuth state
// cookie. Outside production an unset secret falls back to a fixed dev value.
func (s Security) GetSessionSecret() []byte {
	secret := s.v.GetString(sessionSecretVar)
	if secret == "" && !EnvVars(s).IsProduction() {
		return []byte(devSessionSecret)
	}
	return []byte(secret)
}

func (Security) GetSessionTTL() time.Duration {
	return 7 * 24 * time.Hour
}

func (Security) GetStateTTL() time.Duration {
	return 10 * time.Minute
}

func (s Security) GetPickerSessionTTL() time.Duration {
	return s.v.GetDuration(pickerSessionTTLVar)
}
