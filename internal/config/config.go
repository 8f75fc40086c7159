package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config interface {
	EnvConfig
	CredentialsConfig
}

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetShowBanner() bool
	GetShowClaims() bool
}

// CredentialsConfig supplies the Polestar ID account used for login.
type CredentialsConfig interface {
	GetUsername() string
	GetPassword() string
}

type mainConfig struct {
	EnvVars
	Credentials
}

// New loads the configuration from the process environment.
func New() (Config, error) {
	return newFromEnv(env.Options{})
}

// NewFromMap loads the configuration from the supplied variables instead of the process environment.
func NewFromMap(vars map[string]string) (Config, error) {
	return newFromEnv(env.Options{Environment: vars})
}

func newFromEnv(opts env.Options) (Config, error) {
	c := mainConfig{}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, errors.Wrap(err, "[config.New] parse env")
	}
	return c, nil
}
