package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Auth     AuthConfig   `yaml:"auth"`
	LogLevel string       `yaml:"log_level,omitempty"` // debug, info, warn, error
}

// ServerConfig contains HTTP server and storage configuration
type ServerConfig struct {
	HTTP     HTTPConfig `yaml:"http"`
	Database DBConfig   `yaml:"database"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// DBConfig contains database configuration
type DBConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig contains API-key authentication configuration. The key should
// come from the API_KEY environment variable, never from source.
type AuthConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTP:     HTTPConfig{Port: 8080},
			Database: DBConfig{Path: "./onboarding.db"},
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set defaults
	if config.Server.HTTP.Port == 0 {
		config.Server.HTTP.Port = 8080
	}
	if config.Server.Database.Path == "" {
		config.Server.Database.Path = "./onboarding.db"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return &config, nil
}

// ApplyEnv overlays environment variables onto the configuration. Used in
// App Service style deployments where settings arrive via the environment.
func (c *Config) ApplyEnv() error {
	if key := os.Getenv("API_KEY"); key != "" {
		c.Auth.APIKey = key
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		c.Server.Database.Path = path
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", port, err)
		}
		c.Server.HTTP.Port = p
	}
	return nil
}

// ParseLogLevel converts a log level string to a logrus.Level
func ParseLogLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
