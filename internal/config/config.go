// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and PLATOS_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"net"
	"strconv"
)

// Config contains process configuration.
type Config struct {
	// AppName, AppDescription and AppVersion feed the banners and API docs.
	AppName        string `koanf:"app_name"`
	AppDescription string `koanf:"app_description"`
	AppVersion     string `koanf:"app_version"`

	// Host and Port form the HTTP listen address.
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Debug forces debug logging.
	Debug bool `koanf:"debug"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Seed preloads the default menu at startup.
	Seed bool `koanf:"seed"`
}

// New creates a Config holding the documented defaults.
func New() *Config {
	return &Config{
		AppName:        "Platos API",
		AppDescription: "A simple dishes CRUD API",
		AppVersion:     "0.1.0",
		Host:           "0.0.0.0",
		Port:           8000,
		Debug:          true,
		LogLevel:       "info",
		LogFormat:      "text",
		Seed:           true,
	}
}

// Addr returns the listen address, e.g. "0.0.0.0:8000".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// EffectiveLogLevel returns debug when Debug is set, LogLevel otherwise.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
