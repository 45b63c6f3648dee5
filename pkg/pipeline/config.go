package pipeline

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
)

// FileConfig is the layout of a strata.toml configuration file.
//
//	[layout]
//	combine = "same-outputs"
//	max_layer_length = 5
//
//	[cache]
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	redis = "localhost:6379"
type FileConfig struct {
	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Server ServerConfig  `toml:"server"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"` // File cache directory (CLI)
	TTL      string `toml:"ttl"` // Go duration, e.g. "24h"
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures `strata serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	Redis        string `toml:"redis"`
	Mongo        string `toml:"mongo"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 10 << 20
)

// DefaultFileConfig returns the configuration used when no file is given.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Layout: layout.DefaultConfig(),
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// LoadConfigFile reads a TOML configuration file on top of the defaults.
// Unknown keys are rejected.
func LoadConfigFile(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks the layout section and the cache TTL.
func (c FileConfig) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_body_bytes must be non-negative")
	}
	return nil
}

// TTLDuration parses TTL. Empty means DefaultCacheTTL.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidConfig, err, "cache.ttl")
	}
	if d <= 0 {
		return 0, errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must be positive, got %s", c.TTL)
	}
	return d, nil
}
