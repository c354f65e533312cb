// Package config loads filecompare defaults from a YAML file.
//
// Values in the file are defaults only; command line flags and positional
// arguments take precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"FileComparator/internal/compare"
)

type Config struct {
	ChunkSize int  `yaml:"chunk_size"`
	Progress  bool `yaml:"progress"`
	Verbose   bool `yaml:"verbose"`
	JSON      bool `yaml:"json"`
}

func Default() Config {
	return Config{ChunkSize: compare.DefaultChunkSize}
}

// DefaultPath returns $XDG_CONFIG_HOME/filecompare/config.yaml, falling back
// to the user config dir reported by the OS.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "filecompare", "config.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filecompare", "config.yaml"), nil
}

// Load reads path on top of Default. When required is false a missing file
// yields the defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0, got %d", c.ChunkSize)
	}
	if c.ChunkSize > compare.MaxChunkSize {
		return fmt.Errorf("chunk_size must be <= %d, got %d", compare.MaxChunkSize, c.ChunkSize)
	}
	return nil
}
