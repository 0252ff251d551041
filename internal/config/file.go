package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FileOverlay is an optional YAML file that overrides the environment-derived
// configuration. Empty fields fall back to the wrapped Config.
type FileOverlay struct {
	AppName          string `yaml:"app_name"`
	APIBaseURL       string `yaml:"api_base_url"`
	AssetBaseURL     string `yaml:"asset_base_url"`
	DataFolder       string `yaml:"data_folder"`
	SessionNamespace string `yaml:"session_namespace"`
	LogLevel         string `yaml:"log_level"`
	RequiredRole     string `yaml:"required_role"`
}

type overlayConfig struct {
	Config
	overlay FileOverlay
}

// LoadFile wraps base with the overrides found at path. A missing file is not
// an error; the base config is returned unchanged.
func LoadFile(base Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return base, nil
	}
	if err != nil {
		return nil, err
	}

	var overlay FileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, err
	}
	return overlayConfig{Config: base, overlay: overlay}, nil
}

func (o overlayConfig) GetAppName() string {
	return pick(o.overlay.AppName, o.Config.GetAppName)
}

func (o overlayConfig) GetAPIBaseURL() string {
	return pick(o.overlay.APIBaseURL, o.Config.GetAPIBaseURL)
}

func (o overlayConfig) GetAssetBaseURL() string {
	return pick(o.overlay.AssetBaseURL, o.Config.GetAssetBaseURL)
}

func (o overlayConfig) GetDataFolder() string {
	return pick(o.overlay.DataFolder, o.Config.GetDataFolder)
}

func (o overlayConfig) GetSessionNamespace() string {
	return pick(o.overlay.SessionNamespace, o.Config.GetSessionNamespace)
}

func (o overlayConfig) GetLogLevel() string {
	return pick(o.overlay.LogLevel, o.Config.GetLogLevel)
}

func (o overlayConfig) GetRequiredRole() string {
	return pick(o.overlay.RequiredRole, o.Config.GetRequiredRole)
}

func pick(override string, fallback func() string) string {
	if override != "" {
		return override
	}
	return fallback()
}
