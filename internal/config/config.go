package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	// Home overrides the Radicle home directory; empty means the default
	// resolution ($RAD_HOME, then ~/.radicle).
	Home string `koanf:"home"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	API struct {
		Port int `koanf:"port"`
	} `koanf:"api"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"log.level": "info",
		"api.port":  8888,
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./radview.toml", "$HOME/.radview.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix RADVIEW_
	k.Load(env.Provider("RADVIEW_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "RADVIEW_")), "_", ".", -1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# radview configuration

# home = "/home/me/.radicle"

[log]
level = "info"

[api]
port = 8888
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	switch config.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.Log.Level)
	}

	if config.API.Port <= 0 || config.API.Port > 65535 {
		return fmt.Errorf("api port %d is out of range", config.API.Port)
	}

	return nil
}
