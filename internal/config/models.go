package config

import "time"

// CurrentVersion is the config file format version.
const CurrentVersion = 1

// Config is the whole user configuration.
type Config struct {
	Version int           `yaml:"version"`
	API     APIConfig     `yaml:"api"`
	Export  ExportConfig  `yaml:"export"`
	Company CompanyConfig `yaml:"company,omitempty"`
}

// APIConfig locates the Dockit quote API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// ExportConfig controls where exports go and how printing happens.
type ExportConfig struct {
	Dir          string `yaml:"dir"`
	PrintCommand string `yaml:"print_command,omitempty"`
}

// CompanyConfig is the letterhead on printed quotes. Empty fields use the
// built-in Dockit letterhead.
type CompanyConfig struct {
	Name   string `yaml:"name,omitempty"`
	Footer string `yaml:"footer,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}
