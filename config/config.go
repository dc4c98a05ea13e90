// Package config resolves the settings for a test run: where the training/inference service
// lives and how long a single request may take.
//
// Settings are resolved once, in increasing order of precedence: built-in defaults, an optional
// YAML file, then the "host" and "port" environment variables. The result is a plain value that
// is never modified afterward.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost           = "192.168.50.209"
	DefaultPort           = "7201"
	DefaultRequestTimeout = time.Minute * 10

	// EnvHost and EnvPort are the environment variables that override the service address.
	EnvHost = "host"
	EnvPort = "port"
)

// Config is the resolved configuration for a test run.
type Config struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	// RequestTimeout bounds each HTTP round trip to the service. Zero means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LookupFunc has the same signature as os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Load resolves the configuration. If path is empty, no file is read. If lookupEnv is nil,
// os.LookupEnv is used.
func Load(path string, lookupEnv LookupFunc) (Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("can't read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("malformed config file %s: %w", path, err)
		}
	}

	if host, ok := lookupEnv(EnvHost); ok && host != "" {
		cfg.Host = host
	}
	if port, ok := lookupEnv(EnvPort); ok && port != "" {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a reachable address.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("service host must not be empty")
	}
	n, err := strconv.Atoi(c.Port)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid service port %q", c.Port)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative (was %s)", c.RequestTimeout)
	}
	return nil
}

// BaseURL returns the root URL of the service, without a trailing slash.
func (c Config) BaseURL() string {
	return "http://" + net.JoinHostPort(c.Host, c.Port)
}
