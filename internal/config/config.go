package config

type Config interface {
	EnvConfig
	AuthConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetAPIBaseURL() string
	GetAssetBaseURL() string
	GetDataFolder() string
	GetSessionNamespace() string
	GetRequestTimeoutSeconds() int
}

type AuthConfig interface {
	GetAdminEmail() string
	GetAdminPassword() string
	GetRequiredRole() string
}

type mainConfig struct {
	EnvVars
	Auth
}

func New() Config {
	return mainConfig{}
}
