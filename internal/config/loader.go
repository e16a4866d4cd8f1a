// Package config provides centralized configuration management for
// cordial. Values are layered from built-in defaults, the user config
// file (discovered via XDG paths), and CORDIAL_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// AppName is the binary and config directory name.
const AppName = "cordial"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "CORDIAL"

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers the default value for every configuration key.
// Registering empty defaults matters: viper only surfaces environment
// overrides for keys it already knows about.
func SetDefaults() {
	viper.SetDefault("token", "")
	viper.SetDefault("application_id", "")
	viper.SetDefault("public_key", "")

	// Gateway defaults
	viper.SetDefault("gateway.url", "")
	viper.SetDefault("gateway.intents", []string{"default"})
	viper.SetDefault("gateway.event_buffer_size", 256)

	// REST defaults
	viper.SetDefault("rest.base_url", "")
	viper.SetDefault("rest.timeout", "30s")
	viper.SetDefault("rest.retry_cap", 3)

	// Webhook server defaults
	viper.SetDefault("serve.host", "localhost")
	viper.SetDefault("serve.port", 8080)
	viper.SetDefault("serve.path", "/interactions")
	viper.SetDefault("serve.shutdown_timeout", "10s")

	// Store defaults
	viper.SetDefault("store.driver", "libsql")
	viper.SetDefault("store.path", DefaultStorePath())
	viper.SetDefault("store.url", "")
	viper.SetDefault("store.auth_token", "")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// Load decodes the current viper state into a typed Config. Duration
// fields accept Go duration strings; list fields accept comma-separated
// strings so environment overrides stay flat.
//
// This function is safe to call multiple times (e.g., for config reload).
func Load() (*Config, error) {
	cfg := &Config{}
	err := viper.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Store.URL) == "" && strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = DefaultStorePath()
	}

	setConfig(cfg)

	return cfg, nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := gfconfig.GetAppConfigDir(AppName)
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}

// DefaultDataDir returns the XDG-compliant data directory for the app.
func DefaultDataDir() string {
	return gfconfig.GetAppDataDir(AppName)
}

// DefaultStorePath returns the XDG-compliant path to the database file.
func DefaultStorePath() string {
	dataDir := gfconfig.GetAppDataDir(AppName)
	if strings.TrimSpace(dataDir) == "" {
		return "./" + AppName + ".db"
	}
	return filepath.Join(dataDir, AppName+".db")
}
