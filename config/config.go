// Package config loads the meeting-mailer configuration from an optional
// YAML file, a .env file, and environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults match the production deployment.
const (
	DefaultSourceAddress      = "receive@receive.hechven.online"
	DefaultConsultantFallback = "היועץ שלכם"
	DefaultLogLevel           = "info"
)

// Config holds everything the CLI and processor need.
type Config struct {
	SourceAddress      string   `yaml:"source_address"`
	SupportedDomains   []string `yaml:"supported_domains"`
	ConsultantFallback string   `yaml:"consultant_fallback"`
	LogLevel           string   `yaml:"log_level"`
}

// Load builds the configuration: defaults, then the YAML file at path (if
// given), then environment overrides. A .env file in the working directory
// is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SourceAddress:      DefaultSourceAddress,
		ConsultantFallback: DefaultConsultantFallback,
		LogLevel:           DefaultLogLevel,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if source := os.Getenv("EMAIL_SOURCE"); source != "" {
		cfg.SourceAddress = source
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}
