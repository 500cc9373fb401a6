// Package config provides the configuration loader for tzmap.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Default returns the configuration used when no file is present.
func Default() *domain.Config {
	return &domain.Config{Source: domain.SourceStatic}
}

// Load reads the configuration at path, or searches cwd and its parents for
// tzmap.yaml when path is empty. Finding no file is not an error.
func (l *Loader) Load(path, cwd string) (*domain.Config, error) {
	if path == "" {
		found, ok := findConfiguration(cwd)
		if !ok {
			l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
			return Default(), nil
		}
		path = found
	}

	var file Configfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	l.Logger.Debug("loaded configuration from " + path)

	cfg, err := toDomain(&file, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	if cwd == "" {
		return "", false
	}
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func toDomain(file *Configfile, root string) (*domain.Config, error) {
	cfg := Default()
	if file.Source != "" {
		cfg.Source = file.Source
	}

	switch cfg.Source {
	case domain.SourceStatic, domain.SourceOnline, domain.SourceFallback:
	case domain.SourceFile:
		if file.File == "" {
			return nil, zerr.Wrap(domain.ErrMissingSourceFile, "invalid configuration")
		}
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownSource, cfg.Source), "source", cfg.Source)
	}

	if file.File != "" {
		cfg.File = file.File
		if !filepath.IsAbs(cfg.File) {
			cfg.File = filepath.Join(root, cfg.File)
		}
	}

	timeout, err := parseDuration("timeout", file.Timeout)
	if err != nil {
		return nil, err
	}
	ttl, err := parseDuration("cacheTtl", file.CacheTTL)
	if err != nil {
		return nil, err
	}
	if ttl == 0 && file.CacheTTL != "" {
		ttl = domain.AlwaysRefetch
	}

	cfg.Options = domain.Options{
		ThrowOnDuplicateKey: file.ThrowOnDuplicateKey,
		ThrowOnNonExisting:  file.ThrowOnNonExisting,
		Timeout:             timeout,
		ResourceURI:         file.ResourceURI,
		CacheTTL:            ttl,
		CacheDirectory:      file.CacheDirectory,
	}
	return cfg, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		if err == nil {
			err = fmt.Errorf("negative duration %s", value)
		}
		wrapped := zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "invalid duration")
		return 0, zerr.With(wrapped, "key", key)
	}
	return d, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "config file does not exist")
		}
		return zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "cannot read config file")
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, parseErr), "invalid YAML")
	}

	return nil
}
