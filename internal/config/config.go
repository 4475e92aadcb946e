package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cargomcp/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/cargomcp"
	configFileName = "config.yaml"
)

// Config is the application configuration. Everything here tunes how the
// external metadata facility is invoked; per-call behavior (the manifest
// path) always comes from the call itself.
type Config struct {
	Cargo    CargoConfig `yaml:"cargo"`
	LogLevel string      `yaml:"logLevel"`
}

// CargoConfig configures the cargo invocation.
type CargoConfig struct {
	// Binary is the cargo executable to run. Defaults to "cargo" on PATH.
	Binary string `yaml:"binary"`

	// Locked passes --locked to every invocation.
	Locked bool `yaml:"locked"`

	// Offline passes --offline to every invocation.
	Offline bool `yaml:"offline"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cargo: CargoConfig{
			Binary: "cargo",
		},
		LogLevel: "info",
	}
}

// GetDefaultConfigPathOrPanic returns the per-user configuration directory.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// Load loads configuration from the specified directory. A missing
// config.yaml is not an error; the defaults apply.
func Load(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := Default()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		// config malformed
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}
