// Package config loads the optional vesti project file.
//
// A project is configured by vesti.toml, vesti.yaml or vesti.yml:
//
//	engine = "xelatex"
//	banner = true
//	output_dir = "build"
//	watch_debounce = "100ms"
//
// Command-line flags override every value read here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robinvdvleuten/vesti/codegen"
	"gopkg.in/yaml.v3"
)

// FileNames are the project files Find looks for, in order of preference.
var FileNames = []string{"vesti.toml", "vesti.yaml", "vesti.yml"}

// DefaultDebounce is the watch debounce used when none is configured.
const DefaultDebounce = 100 * time.Millisecond

// Config holds the project settings.
type Config struct {
	Engine        string `toml:"engine" yaml:"engine"`
	Banner        *bool  `toml:"banner" yaml:"banner"`
	OutputDir     string `toml:"output_dir" yaml:"output_dir"`
	WatchDebounce string `toml:"watch_debounce" yaml:"watch_debounce"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the configuration used without a project file.
func Default() *Config {
	return &Config{Engine: codegen.Pdflatex.String()}
}

// Load reads the config file at path. The format follows the extension;
// anything other than .yaml or .yml is read as TOML.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse %s: unknown key %q", path, undecoded[0].String())
		}
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find loads the first project file in dir. Without one it returns
// Default.
func Find(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
		return Load(path)
	}
	return Default(), nil
}

// Validate checks the engine name and debounce duration.
func (c *Config) Validate() error {
	if _, err := c.EngineValue(); err != nil {
		return err
	}
	if _, err := c.Debounce(); err != nil {
		return err
	}
	return nil
}

// EngineValue returns the configured engine, pdflatex when unset.
func (c *Config) EngineValue() (codegen.Engine, error) {
	if c.Engine == "" {
		return codegen.Pdflatex, nil
	}
	return codegen.ParseEngine(c.Engine)
}

// BannerEnabled reports whether generated files get the banner.
func (c *Config) BannerEnabled() bool {
	return c.Banner == nil || *c.Banner
}

// Debounce returns the watch debounce, DefaultDebounce when unset.
func (c *Config) Debounce() (time.Duration, error) {
	if c.WatchDebounce == "" {
		return DefaultDebounce, nil
	}
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch_debounce %q: %w", c.WatchDebounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid watch_debounce %q: must not be negative", c.WatchDebounce)
	}
	return d, nil
}
