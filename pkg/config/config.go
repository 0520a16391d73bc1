// Package config loads typespub settings from a TOML file.
//
// The file is looked up as ./typespub.toml, then in the user configuration
// directory ($XDG_CONFIG_HOME/typespub/typespub.toml on Linux). Every key is
// optional:
//
//	registry_url         = "https://registry.npmjs.org"
//	scope                = "types"
//	data_dir             = "data"
//	types_root           = "types"
//	concurrency          = 8
//	registry_concurrency = 25
//	cache_ttl            = "24h"
//
//	[tools]
//	installer = ["npm", "install", "--ignore-scripts"]
//	compiler  = ["tsc"]
//	linter    = ["tslint"]
//
// Values are handed to constructors explicitly; nothing in this package is
// consulted at run time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/integrations/npm"
	"github.com/matzehuels/typespub/pkg/packages"
	"github.com/matzehuels/typespub/pkg/parallel"
	"github.com/matzehuels/typespub/pkg/versions"
)

const (
	// AppName names the configuration directory.
	AppName = "typespub"
	// FileName is the configuration file name.
	FileName = "typespub.toml"

	DefaultDataDir   = "data"
	DefaultTypesRoot = "types"
	DefaultCacheTTL  = 24 * time.Hour
)

// Duration is a time.Duration written as a string such as "90m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses the duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Tools overrides the external commands of the tester.
type Tools struct {
	Installer []string `toml:"installer"`
	Compiler  []string `toml:"compiler"`
	Linter    []string `toml:"linter"`
}

// Config holds every setting.
type Config struct {
	RegistryURL         string   `toml:"registry_url"`
	Scope               string   `toml:"scope"`
	DataDir             string   `toml:"data_dir"`
	TypesRoot           string   `toml:"types_root"`
	Concurrency         int      `toml:"concurrency"`
	RegistryConcurrency int      `toml:"registry_concurrency"`
	CacheTTL            Duration `toml:"cache_ttl"`
	Tools               Tools    `toml:"tools"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.RegistryURL == "" {
		c.RegistryURL = npm.DefaultURL
	}
	if c.Scope == "" {
		c.Scope = packages.DefaultScope
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.TypesRoot == "" {
		c.TypesRoot = DefaultTypesRoot
	}
	if c.Concurrency == 0 {
		c.Concurrency = parallel.DefaultConcurrency()
	}
	if c.RegistryConcurrency == 0 {
		c.RegistryConcurrency = versions.DefaultConcurrency
	}
	if c.CacheTTL.Duration == 0 {
		c.CacheTTL.Duration = DefaultCacheTTL
	}
	return c
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.RegistryURL); err != nil {
		return c.invalid(err, "registry_url")
	}
	if c.Concurrency < 0 {
		return c.invalid(nil, "concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.RegistryConcurrency < 0 {
		return c.invalid(nil, "registry_concurrency must not be negative, got %d", c.RegistryConcurrency)
	}
	if c.CacheTTL.Duration < 0 {
		return c.invalid(nil, "cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	tools := []struct {
		key string
		cmd []string
	}{
		{"tools.installer", c.Tools.Installer},
		{"tools.compiler", c.Tools.Compiler},
		{"tools.linter", c.Tools.Linter},
	}
	for _, t := range tools {
		if len(t.cmd) > 0 && t.cmd[0] == "" {
			return c.invalid(nil, "%s must name an executable", t.key)
		}
	}
	return nil
}

func (c Config) invalid(cause error, format string, args ...any) error {
	where := "config"
	if c.Path != "" {
		where = c.Path
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, cause, "%s: %s", where, fmt.Sprintf(format, args...))
}

// Load reads the configuration file at path, applies defaults and validates
// the result. An empty path searches the default locations and falls back to
// defaults when no file exists.
func Load(path string) (Config, error) {
	if path == "" {
		path = Find()
		if path == "" {
			return Default(), nil
		}
	}

	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	c.Path = path
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Find returns the first configuration file in the search path, or "".
func Find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, AppName, FileName))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
