package config

type Config interface {
	EnvConfig
	OIDCConfig
	SecurityConfig
}

type mainConfig struct {
	EnvVars
	OIDC
	Security
}

func New() Config {
	return mainConfig{}
}
