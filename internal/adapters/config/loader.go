// Package config provides the configuration loader for obslog.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names the environment variable overriding the configuration file path.
	EnvConfig = "OBSLOG_CONFIG"
	// EnvDocument names the environment variable overriding the default document.
	EnvDocument = "OBSLOG_DOCUMENT"
	// Version is the configuration file format understood by Load.
	// Files without a version are read as this format.
	Version = "1"
)

// ErrUnsupportedVersion is returned for configuration files of an unknown format.
var ErrUnsupportedVersion = zerr.New("unsupported config version")

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load reads the configuration from path. A missing file yields the defaults.
func (l *FileConfigLoader) Load(path string) (*domain.Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Info("no configuration file, using defaults", "path", path)
		return applyEnv(domain.DefaultConfig()), nil
	}
	if err != nil {
		return nil, err
	}
	return applyEnv(cfg), nil
}

// Path returns the configuration file path, honoring OBSLOG_CONFIG.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return domain.DefaultConfigPath()
}

// Load reads a configuration file from the given path and merges it over the defaults.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Version != "" && file.Version != Version {
		err := zerr.With(zerr.Wrap(ErrUnsupportedVersion, ""), "version", file.Version)
		return nil, zerr.With(err, "path", path)
	}

	cfg := domain.DefaultConfig()
	if file.Document != "" {
		cfg.Document = expandHome(file.Document, filepath.Dir(path))
	}
	if file.Backup != nil {
		cfg.Backup = *file.Backup
	}
	if file.Indent != nil {
		if *file.Indent < 0 || *file.Indent > 8 {
			return nil, zerr.With(zerr.New("indent must be between 0 and 8"), "indent", *file.Indent)
		}
		cfg.Indent = strings.Repeat(" ", *file.Indent)
	}
	if file.RecentLimit != nil {
		if *file.RecentLimit < 0 {
			return nil, zerr.With(zerr.New("recentLimit must not be negative"), "recentLimit", *file.RecentLimit)
		}
		cfg.RecentLimit = *file.RecentLimit
	}
	if file.StateDir != "" {
		cfg.StateDir = expandHome(file.StateDir, filepath.Dir(path))
	}
	return cfg, nil
}

func applyEnv(cfg *domain.Config) *domain.Config {
	if doc := os.Getenv(EnvDocument); doc != "" {
		cfg.Document = doc
	}
	return cfg
}

// expandHome resolves "~/" against the home directory and relative paths
// against the directory of the configuration file.
func expandHome(p, base string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if !filepath.IsAbs(p) {
		return filepath.Join(base, p)
	}
	return p
}
