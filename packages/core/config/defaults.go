package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		URL:         "",
		Timeout:     0, // rely on the transport's defaults
		UserAgent:   "",
		PartName:    "file",
		ValidateSSL: nil,
		Headers:     nil,
		Fields:      nil,
		History:     "",
		NoColor:     nil,
	}
}
