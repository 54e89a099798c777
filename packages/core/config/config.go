package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the formpost configuration
type Config struct {
	URL         string            `json:"url,omitempty"`         // Default target URL
	Timeout     int               `json:"timeout,omitempty"`     // milliseconds, 0 = transport default
	UserAgent   string            `json:"userAgent,omitempty"`
	PartName    string            `json:"partName,omitempty"`    // Form field the file is attached under
	ValidateSSL *bool             `json:"validateSSL,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`     // Headers sent with every upload
	Fields      map[string]string `json:"fields,omitempty"`      // Form fields sent with every upload
	History     string            `json:"history,omitempty"`     // Path to the upload history database
	NoColor     *bool             `json:"noColor,omitempty"`
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".formpost.config.json",
	"formpost.config.json",
	".formpostrc",
	".formpostrc.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.URL != "" {
		result.URL = other.URL
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.UserAgent != "" {
		result.UserAgent = other.UserAgent
	}
	if other.PartName != "" {
		result.PartName = other.PartName
	}
	if other.History != "" {
		result.History = other.History
	}

	// Boolean flags - only override if explicitly set in other config
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge headers and default fields into fresh maps so neither
	// input config is mutated
	if len(other.Headers) > 0 {
		result.Headers = mergeMaps(c.Headers, other.Headers)
	}
	if len(other.Fields) > 0 {
		result.Fields = mergeMaps(c.Fields, other.Fields)
	}

	return &result
}

func mergeMaps(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
