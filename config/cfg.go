// Package config loads the program configuration and prepares the
// logger built from it.
package config

import (
	"bytes"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"golang.org/x/term"
)

type (
	// RenderConfig lists the stylesheet sources applied to every
	// document, in cascade order. CLI flags may append to it.
	RenderConfig struct {
		UserAgentStylesheet string   `yaml:"user_agent_stylesheet,omitempty"`
		Stylesheets         []string `yaml:"stylesheets,omitempty"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Render  RenderConfig  `yaml:"render"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

const currentConfigVersion = 1

func defaultConfig() *Config {
	return &Config{
		Version: currentConfigVersion,
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields we defined are acceptable, so plain yaml.Unmarshal
	// cannot be used here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given
// path, superimposing its values on the defaults. An empty path returns
// the defaults unchanged.
func LoadConfiguration(path string) (*Config, error) {
	cfg := defaultConfig()
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	if cfg.Version != currentConfigVersion {
		return nil, fmt.Errorf("unsupported configuration version %d", cfg.Version)
	}
	if err := cfg.Logging.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump serializes the configuration back to yaml.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
