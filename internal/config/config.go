package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Endpoint is the inference backend base URL shared by every runner.
	Endpoint string `mapstructure:"endpoint"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for the launch and run commands
type DefaultsConfig struct {
	// Models is the list the launcher iterates when none is given.
	Models []string `mapstructure:"models"`

	// Images are the input image paths evaluated by each runner.
	Images []string `mapstructure:"images"`

	// LockTimeout bounds acquisition of the shared output lock.
	LockTimeout string `mapstructure:"lock_timeout"`

	// TrustRemoteCode is forwarded to the inference backend on load.
	TrustRemoteCode bool `mapstructure:"trust_remote_code"`
}

// defaultModels is the fixed benchmark roster used when neither config nor
// flags supply one.
var defaultModels = []string{
	"HuggingFaceTB/SmolVLM-256M-Instruct",
	"LiquidAI/LFM2-VL-450M",
	"LiquidAI/LFM2-VL-1.6B",
	"Qwen/Qwen2-VL-2B-Instruct",
	"HuggingFaceTB/SmolVLM-Instruct",
	"Qwen/Qwen2.5-VL-3B-Instruct",
	"google/gemma-3-4b-it",
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "ndjson",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Models:          append([]string(nil), defaultModels...),
			Images:          []string{"./sock.png", "./cat.png"},
			LockTimeout:     "60s",
			TrustRemoteCode: true,
		},
	}
}

// Load loads configuration from files and environment.
// Config file search order (highest precedence first):
// 1. ./.gripbench.yaml or ./.gripbench.yml
// 2. ~/.gripbench.yaml or ~/.gripbench.yml
// 3. $XDG_CONFIG_HOME/gripbench/config.yaml (or ~/.config/gripbench/config.yaml)
// 4. /etc/gripbench/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".gripbench.yaml", ".gripbench.yml", "gripbench.yaml", "gripbench.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "gripbench"))
	}
	searchPaths = append(searchPaths, "/etc/gripbench")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRIPBENCH_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("GRIPBENCH_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("GRIPBENCH_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("GRIPBENCH_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
