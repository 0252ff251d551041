package config

import (
	"os"
	"strconv"
)

const (
	apiBaseURLVar       = "API_BASE_URL"
	assetBaseURLVar     = "ASSET_BASE_URL"
	appNameVar          = "APP_NAME"
	dataFolderVar       = "DATA_FOLDER"
	sessionNamespaceVar = "SESSION_NAMESPACE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Admin Console")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}

// GetAPIBaseURL returns the base URL of the dashboard REST API
// (e.g. "https://api.example.com"). All resource paths are resolved
// relative to it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:5000")
}

// GetAssetBaseURL returns the base URL that serves uploaded image assets
// (category images and the like), which the API returns as relative paths.
func (EnvVars) GetAssetBaseURL() string {
	return GetEnv(assetBaseURLVar, "http://localhost:5000/assets")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(dataFolderVar, "./data")
}

// GetSessionNamespace keys the persisted session file so several consoles
// can share one data folder without clobbering each other.
func (EnvVars) GetSessionNamespace() string {
	return GetEnv(sessionNamespaceVar, "root")
}

func (EnvVars) GetRequestTimeoutSeconds() int {
	v := GetEnv("REQUEST_TIMEOUT_SECONDS", "30")
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 30
	}
	return n
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAdminEmail() string {
	return GetEnv("ADMIN_EMAIL", "")
}

func (Auth) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "")
}

// GetRequiredRole is the role the decoded login bundle must carry before the
// session is marked authenticated. The console is admin-only.
func (Auth) GetRequiredRole() string {
	return GetEnv("REQUIRED_ROLE", "admin")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
