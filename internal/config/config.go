// Package config loads server configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".madness.yml"

// Transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Defaults.
const (
	DefaultPort         = 3001
	DefaultBind         = "0.0.0.0"
	DefaultCacheMaxSize = 1000
	DefaultCacheTTLMs   = 3_600_000
	DefaultEnv          = "local"
	DefaultStoragePath  = ":memory:"
)

// Config holds the server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`

	// Warnings collects values that were ignored while loading.
	Warnings []string `yaml:"-"`
}

// ServerConfig holds transport settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	Bind      string `yaml:"bind"`
	Transport string `yaml:"transport"` // stdio, sse
}

// CacheConfig bounds every cache bucket.
type CacheConfig struct {
	MaxSize   int   `yaml:"max_size"`
	TTLMillis int64 `yaml:"ttl_ms"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMillis) * time.Millisecond
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // local, dev, docker, prod
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// StorageConfig holds catalogue database settings.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with every default applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// Load reads the YAML file at path, expanding ${VAR} references, and applies
// defaults. An empty path reads DefaultFile if it exists.
func Load(path string) (Config, error) {
	optional := path == ""
	if optional {
		path = DefaultFile
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Server.Transport != "" && !validTransport(cfg.Server.Transport) {
		cfg.warnf("ignoring invalid transport %q in %s", cfg.Server.Transport, path)
		cfg.Server.Transport = ""
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv overrides values from the environment. Unparseable values are
// ignored and recorded in Warnings.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		} else {
			c.warnf("ignoring invalid PORT %q", v)
		}
	}
	if v, ok := lookup("BIND"); ok && v != "" {
		c.Server.Bind = v
	}
	if v, ok := lookup("TRANSPORT_TYPE"); ok && v != "" {
		if validTransport(v) {
			c.Server.Transport = v
		} else {
			c.warnf("ignoring invalid TRANSPORT_TYPE %q", v)
		}
	}
	if v, ok := lookup("CACHE_MAX_SIZE"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Cache.MaxSize = n
		} else {
			c.warnf("ignoring invalid CACHE_MAX_SIZE %q", v)
		}
	}
	if v, ok := lookup("CACHE_TTL_MS"); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.Cache.TTLMillis = n
		} else {
			c.warnf("ignoring invalid CACHE_TTL_MS %q", v)
		}
	}
	if v, ok := lookup("ENV"); ok && v != "" {
		c.Logging.Env = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("CLOUDSCAPE_DB_PATH"); ok && v != "" {
		c.Storage.Path = v
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Bind == "" {
		c.Server.Bind = DefaultBind
	}
	if c.Server.Transport == "" {
		c.Server.Transport = TransportStdio
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = DefaultCacheMaxSize
	}
	if c.Cache.TTLMillis == 0 {
		c.Cache.TTLMillis = DefaultCacheTTLMs
	}
	if c.Logging.Env == "" {
		c.Logging.Env = DefaultEnv
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !validTransport(c.Server.Transport) {
		return fmt.Errorf("server.transport must be %q or %q, got %q", TransportStdio, TransportSSE, c.Server.Transport)
	}
	if c.Cache.MaxSize <= 0 {
		return fmt.Errorf("cache.max_size must be positive, got %d", c.Cache.MaxSize)
	}
	if c.Cache.TTLMillis <= 0 {
		return fmt.Errorf("cache.ttl_ms must be positive, got %d", c.Cache.TTLMillis)
	}
	return nil
}

// Addr returns the listen address for the SSE transport.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func validTransport(t string) bool {
	return t == TransportStdio || t == TransportSSE
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the value of the environment variable.
// Unset variables expand to an empty string.
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.TrimSpace(string(match[2 : len(match)-1]))
		return []byte(os.Getenv(name))
	})
}
