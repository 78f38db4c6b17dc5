package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "bioview"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Dir returns ~/.config/bioview. It is where the config, the workspace state,
// the readme list, the templates and the TUI log live.
func (l *Loader) Dir() (string, error) {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", ConfigDir), nil
}

// Load reads configuration from ~/.config/bioview/config.json
// and merges it with defaults. Dotfile values override defaults.
// Returns default config if dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
func (l *Loader) Load() (*Config, error) {
	dir, err := l.Dir()
	if err != nil {
		cfg := DefaultConfig()
		cfg.resolvePaths(".")
		return cfg, nil // Use defaults if can't get home dir
	}
	return l.load(filepath.Join(dir, ConfigFile), dir)
}

// LoadFrom reads configuration from an explicit path. Relative paths in the
// files section are resolved against the standard config directory.
func (l *Loader) LoadFrom(path string) (*Config, error) {
	dir, err := l.Dir()
	if err != nil {
		dir = filepath.Dir(path)
	}
	return l.load(path, dir)
}

// NOTE: This implementation unmarshals JSON keys directly over the default configuration.
// This allows explicit zero values (e.g., 0, false, "") in the config file to override defaults.
func (l *Loader) load(path, dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.resolvePaths(dir)
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, err // Return error for permission issues
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err // Return error for malformed JSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.resolvePaths(dir)
	return cfg, nil
}

// resolvePaths anchors the list file and template directory in dir unless
// the dotfile set absolute paths.
func (c *Config) resolvePaths(dir string) {
	if c.Files.ListFile == "" {
		c.Files.ListFile = DefaultListFile
	}
	if !filepath.IsAbs(c.Files.ListFile) {
		c.Files.ListFile = filepath.Join(dir, c.Files.ListFile)
	}
	if c.Files.TemplateDir == "" {
		c.Files.TemplateDir = "templates"
	}
	if !filepath.IsAbs(c.Files.TemplateDir) {
		c.Files.TemplateDir = filepath.Join(dir, c.Files.TemplateDir)
	}
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
