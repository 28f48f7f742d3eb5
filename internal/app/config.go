package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"docvault"
	"docvault/internal/store"
)

// SecretEnv names the environment variable consulted for the secret when none
// is configured.
const SecretEnv = "DOCVAULT_SECRET"

// Config holds the constructor-level configuration of a store plus CLI
// settings.
type Config struct {
	Source     string `yaml:"source"`
	BaseDir    string `yaml:"base_dir"`
	Encryption bool   `yaml:"encryption"`
	Secret     string `yaml:"secret"`
	Iterations int    `yaml:"iterations"`
	Empty      bool   `yaml:"empty"`
	LogLevel   string `yaml:"log_level"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected. An empty
// path yields the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading config: %w", docvault.ErrConfig, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: parsing %s: %w", docvault.ErrConfig, path, err)
	}
	if cfg.BaseDir != "" && !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	return cfg, nil
}

// ApplyEnv fills the secret from SecretEnv when it is not already set.
func (c *Config) ApplyEnv() {
	if c.Secret == "" {
		c.Secret = os.Getenv(SecretEnv)
	}
}

// Validate checks the source, the secret and the iteration count.
func (c Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source is required", docvault.ErrConfig)
	}
	ext := strings.ToLower(filepath.Ext(c.Source))
	if !slices.Contains(store.Extensions, ext) {
		return fmt.Errorf("%w: source %q must end in one of %s", docvault.ErrConfig, c.Source, strings.Join(store.Extensions, ", "))
	}
	if c.Encryption && c.Secret == "" {
		return fmt.Errorf("%w: secret required when encryption is enabled (--secret or %s)", docvault.ErrConfig, SecretEnv)
	}
	if c.Iterations < 0 || c.Iterations > docvault.MaxIterations {
		return fmt.Errorf("%w: iterations must be in 1..%d, got %d", docvault.ErrConfig, docvault.MaxIterations, c.Iterations)
	}
	return nil
}

// Options converts c to store options.
func (c Config) Options() docvault.Options {
	return docvault.Options{
		Source:     c.Source,
		BaseDir:    c.BaseDir,
		Encryption: c.Encryption,
		Secret:     c.Secret,
		Iterations: c.Iterations,
		Empty:      c.Empty,
	}
}
