package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
)

const DefaultCurrency = "GBP"

// BackendOptions configures the ledger backend collaborator.
type BackendOptions struct {
	BaseURL string `yaml:"baseUrl"`
	Token   string `yaml:"token"`
}

// Config holds the application configuration
type Config struct {
	Backend  BackendOptions `yaml:"backend"`
	Currency string         `yaml:"currency"`
	// OverridesPath is where operator-confirmed link overrides are stored.
	OverridesPath string `yaml:"overridesPath"`
	Debug         bool   `yaml:"debug"`
}

var (
	// Global configuration instance
	globalConfig *Config
	// Mutex to ensure thread-safe access to the global configuration
	configMutex sync.RWMutex
	// Flag to track if the configuration has been loaded
	configLoaded bool
)

// LoadConfig loads the configuration from the specified YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}

	return &config, nil
}

// InitGlobalConfig initializes the global configuration from the specified file
func InitGlobalConfig(configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = config
	configLoaded = true
	return nil
}

// GetConfig returns the global configuration instance
// If the configuration hasn't been loaded yet, it attempts to load it from
// the default location (./config.yaml) and creates a default file when none
// exists.
func GetConfig() (*Config, error) {
	configMutex.RLock()
	if configLoaded {
		defer configMutex.RUnlock()
		return globalConfig, nil
	}
	configMutex.RUnlock()

	configPath := "config.yaml"
	if err := InitGlobalConfig(configPath); err != nil {
		// the read error is wrapped, so unwrap rather than os.IsNotExist
		if errors.Is(err, fs.ErrNotExist) {
			return createDefaultConfig(configPath)
		}
		return nil, err
	}

	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating config directory: %w", err)
		}
	}

	defaultConfig := &Config{
		Backend:  BackendOptions{BaseURL: "http://localhost:8080"},
		Currency: DefaultCurrency,
	}

	data, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return nil, fmt.Errorf("error writing default config: %w", err)
	}

	configMutex.Lock()
	globalConfig = defaultConfig
	configLoaded = true
	configMutex.Unlock()

	return defaultConfig, nil
}

// GetBackendOptions returns the backend base URL and token from the
// configuration.
func GetBackendOptions() (BackendOptions, error) {
	config, err := GetConfig()
	if err != nil {
		return BackendOptions{}, err
	}

	if config.Backend.BaseURL == "" {
		return BackendOptions{}, fmt.Errorf("backend base URL not set in configuration")
	}

	return config.Backend, nil
}

// GetCurrency returns the collection currency, defaulting to GBP.
func GetCurrency() string {
	config, err := GetConfig()
	if err != nil || config.Currency == "" {
		return DefaultCurrency
	}
	return config.Currency
}

// IsDebug reports whether HTTP debug logging is enabled.
func IsDebug() bool {
	config, err := GetConfig()
	if err != nil {
		return false
	}
	return config.Debug
}
