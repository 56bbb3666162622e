package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Scoring controls how sentences are normalized and compared.
type Scoring struct {
	Stemmer         string `toml:"stemmer"`
	Language        string `toml:"language"`
	IgnoreStopWords bool   `toml:"ignore_stop_words"`
	TokenOrder      string `toml:"token_order"`
	// Workers above 1 builds matrix rows in parallel.
	Workers int `toml:"workers"`
}

// Clustering selects the partitioning strategy.
type Clustering struct {
	Threshold float64 `toml:"threshold"`
	Strategy  string  `toml:"strategy"`
}

// Source controls how sentence input is read.
type Source struct {
	// SkipBlank drops blank lines. Disabling it stops reading at the first
	// blank line instead.
	SkipBlank bool `toml:"skip_blank"`
}

// History controls the SQLite run history.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Keep    int    `toml:"keep"` // Default: 200 most recent runs
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Output controls result rendering.
type Output struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Config encapsulates all configuration values for sentcluster.
//
// Configuration sections by subsystem:
//   - Scoring: stemmer, stop words, token order, build parallelism
//   - Clustering: threshold and strategy
//   - Source: input line handling
//   - History: run history database
//   - Logging: log format, level, and optional file
//   - Output: result format and colour
type Config struct {
	Scoring    Scoring    `toml:"scoring"`
	Clustering Clustering `toml:"clustering"`
	Source     Source     `toml:"source"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
	Output     Output     `toml:"output"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Normalize re-applies normalization after callers override fields (for
// example from command-line flags).
func (c *Config) Normalize() error {
	return c.normalize()
}

// EnsureDirectories creates the directory holding the history database.
func (c *Config) EnsureDirectories() error {
	if !c.History.Enabled || strings.TrimSpace(c.History.Path) == "" {
		return nil
	}
	dir := filepath.Dir(c.History.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history directory %q: %w", dir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
