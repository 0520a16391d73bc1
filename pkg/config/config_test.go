package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/typespub/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.RegistryURL != "https://registry.npmjs.org" {
		t.Errorf("RegistryURL = %q", c.RegistryURL)
	}
	if c.Scope != "types" || c.DataDir != DefaultDataDir || c.TypesRoot != DefaultTypesRoot {
		t.Errorf("Default() = %+v", c)
	}
	if c.Concurrency < 1 {
		t.Errorf("Concurrency = %d, want >= 1", c.Concurrency)
	}
	if c.RegistryConcurrency != 25 {
		t.Errorf("RegistryConcurrency = %d, want 25", c.RegistryConcurrency)
	}
	if c.CacheTTL.Duration != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", c.CacheTTL)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
registry_url = "http://localhost:4873"
scope = "acme"
concurrency = 3
cache_ttl = "90m"

[tools]
compiler = ["node", "tsc.js"]
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.RegistryURL != "http://localhost:4873" || c.Scope != "acme" || c.Concurrency != 3 {
		t.Errorf("Load = %+v", c)
	}
	if c.CacheTTL.Duration != 90*time.Minute {
		t.Errorf("CacheTTL = %v, want 90m", c.CacheTTL)
	}
	if !slices.Equal(c.Tools.Compiler, []string{"node", "tsc.js"}) {
		t.Errorf("Tools.Compiler = %v", c.Tools.Compiler)
	}
	if c.Tools.Linter != nil {
		t.Errorf("Tools.Linter = %v, want unset", c.Tools.Linter)
	}
	// Unset keys fall back to defaults.
	if c.RegistryConcurrency != 25 || c.DataDir != DefaultDataDir {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Path != path {
		t.Errorf("Path = %q, want %q", c.Path, path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `concurrency = `, errors.ErrCodeInvalidConfig},
		{"unknown key", `registry = "x"`, errors.ErrCodeInvalidConfig},
		{"bad duration", `cache_ttl = "soon"`, errors.ErrCodeInvalidConfig},
		{"negative concurrency", `concurrency = -1`, errors.ErrCodeInvalidConfig},
		{"negative registry concurrency", `registry_concurrency = -5`, errors.ErrCodeInvalidConfig},
		{"bad url", `registry_url = "ftp://example.com"`, errors.ErrCodeInvalidConfig},
		{"empty tool", "[tools]\nlinter = [\"\"]", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load error = %v, want NOT_FOUND", err)
	}
}

func TestFind(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if got := Find(); got != "" {
		t.Errorf("Find() = %q, want none", got)
	}
	c, err := Load("")
	if err != nil || c.Path != "" {
		t.Errorf("Load(\"\") = %+v, %v; want defaults", c, err)
	}

	if err := os.WriteFile(FileName, []byte(`scope = "local"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Find(); got != FileName {
		t.Errorf("Find() = %q, want %q", got, FileName)
	}
	c, err = Load("")
	if err != nil || c.Scope != "local" {
		t.Errorf("Load(\"\") = %+v, %v", c, err)
	}
}

func TestDurationMarshalText(t *testing.T) {
	b, err := Duration{90 * time.Minute}.MarshalText()
	if err != nil || string(b) != "1h30m0s" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
}
