// Package cli implements the strata command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "strata"

	// configFileName is looked up in the working directory when --config is
	// not given.
	configFileName = "strata.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig returns the file configuration: the --config file, else
// ./strata.toml when present, else the defaults.
func (c *CLI) loadConfig() (pipeline.FileConfig, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(configFileName); err != nil {
			return pipeline.DefaultFileConfig(), nil
		}
		path = configFileName
	}
	cfg, err := pipeline.LoadConfigFile(path)
	if err != nil {
		return pipeline.FileConfig{}, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg pipeline.CacheConfig, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyerFor(cfg), c.Logger), nil
}

// keyerFor scopes cache keys by the configured prefix. Nil selects the
// default keyer.
func keyerFor(cfg pipeline.CacheConfig) cache.Keyer {
	if cfg.Prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Prefix)
}

func newCache(cfg pipeline.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// pipelineOptions builds run options from the file config.
func pipelineOptions(cfg pipeline.FileConfig) (pipeline.Options, error) {
	ttl, err := cfg.Cache.TTLDuration()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Layout:   cfg.Layout,
		CacheTTL: ttl,
	}
	opts.SetDefaults()
	return opts, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/strata/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Output name infixes: laid-out graphs get <name>.layout.<format>, renders of
// an existing layout file get <name>.<format>.
const (
	layoutInfix = ".layout."
	renderInfix = "."
)

// outputPath returns <input without extension><infix><format> in dir, or
// next to the input when dir is empty.
func outputPath(input, dir, infix, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if input == "-" {
		base = "stdin"
	}
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+infix+format)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// writeArtifacts writes every artifact to its output path and returns the
// paths in format order.
func writeArtifacts(input, dir, infix string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	var paths []string
	for _, f := range formats {
		path := outputPath(input, dir, infix, f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// commandContext returns cmd's context with the CLI logger attached.
func (c *CLI) commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return log.WithContext(ctx, c.Logger)
}
