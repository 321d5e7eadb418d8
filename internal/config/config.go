package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	LibraryPath string       `toml:"library_path"`
	Listen      string       `toml:"listen"`
	Render      RenderConfig `toml:"render"`
}

// RenderConfig holds the deck-sheet composition settings
type RenderConfig struct {
	CardWidth  int `toml:"card_width"`
	CardHeight int `toml:"card_height"`
	Gutter     int `toml:"gutter"`
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetCacheDir returns XDG_CACHE_HOME or default path, scoped to deckherald
func GetCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "deckherald")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache", "deckherald")
}

// GetDefaultLibraryPath returns the default card-art library location
func GetDefaultLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "deckherald", "library")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckherald", "config.toml")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	config.applyDefaults()

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := defaultConfig()

	// Create the file
	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	c := &Config{
		LibraryPath: GetDefaultLibraryPath(),
		Listen:      ":8080",
	}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.LibraryPath == "" {
		c.LibraryPath = GetDefaultLibraryPath()
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Render.CardWidth == 0 {
		c.Render.CardWidth = 120
	}
	if c.Render.CardHeight == 0 {
		c.Render.CardHeight = 168
	}
	if c.Render.Gutter == 0 {
		c.Render.Gutter = 12
	}
}

// GetLibraryPath resolves a library location: an explicit path wins,
// otherwise the configured one is used.
func GetLibraryPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("library not found: %s", explicit)
	}

	config, err := LoadConfig()
	if err != nil {
		return "", err
	}
	return config.LibraryPath, nil
}
