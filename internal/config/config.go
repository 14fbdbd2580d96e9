package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid marks a config that failed validation.
var ErrInvalid = errors.New("invalid config")

// Config represents the todocurses configuration file.
type Config struct {
	Version     int                 `yaml:"version" json:"version"`
	ArchiveFile string              `yaml:"archive_file" json:"archive_file"`
	Bell        bool                `yaml:"bell" json:"bell"`
	PageSize    int                 `yaml:"page_size,omitempty" json:"page_size,omitempty"`
	LogFile     string              `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	Watch       bool                `yaml:"watch,omitempty" json:"watch,omitempty"`
	Keys        map[string][]string `yaml:"keys,omitempty" json:"keys,omitempty"`

	// path is where the config was loaded from (not serialized).
	path string `yaml:"-"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:     CurrentVersion,
		ArchiveFile: DefaultArchiveFile,
		PageSize:    DefaultPageSize,
	}
}

// DefaultPath returns ~/.config/todocurses/config.yml (or the platform's
// equivalent user config directory).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFileName), nil
}

// Path returns the file the config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// SetPath sets the file the config is saved to.
func (c *Config) SetPath(path string) {
	c.path = path
}

// PageSizeOrDefault returns the page size, falling back to DefaultPageSize
// when unset.
func (c *Config) PageSizeOrDefault() int {
	if c.PageSize == 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// KeysFor returns the keys bound to action, falling back to the defaults
// for actions the file does not mention.
func (c *Config) KeysFor(action string) []string {
	if keys, ok := c.Keys[action]; ok {
		return keys
	}
	return DefaultKeys[action]
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := validateArchiveFile(c.ArchiveFile); err != nil {
		return err
	}
	if c.PageSize < 0 {
		return fmt.Errorf("%w: page_size must be >= 0", ErrInvalid)
	}
	return c.validateKeys()
}

func validateArchiveFile(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: archive_file is required", ErrInvalid)
	case name == "." || name == "..":
		return fmt.Errorf("%w: archive_file %q is not a file name", ErrInvalid, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: archive_file %q must be a bare file name", ErrInvalid, name)
	}
	return nil
}

func (c *Config) validateKeys() error {
	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		if !slices.Contains(Actions, action) {
			return fmt.Errorf("%w: keys references unknown action %q", ErrInvalid, action)
		}
		keys := c.Keys[action]
		if len(keys) == 0 {
			return fmt.Errorf("%w: keys.%s must bind at least one key", ErrInvalid, action)
		}
		if slices.Contains(keys, "") {
			return fmt.Errorf("%w: keys.%s contains an empty key", ErrInvalid, action)
		}
	}

	// Check the effective bindings, so a remapped key cannot collide with a
	// default one.
	listOwner := make(map[string]string)
	modalOwner := make(map[string]string)
	for _, action := range Actions {
		owner := listOwner
		if modalActions[action] {
			owner = modalOwner
		}
		for _, k := range c.KeysFor(action) {
			if prev, ok := owner[k]; ok && prev != action {
				return fmt.Errorf("%w: key %q is bound to both %s and %s", ErrInvalid, k, prev, action)
			}
			owner[k] = action
		}
	}
	return nil
}

// Save writes the config to its path, creating the directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// Load reads and validates the config at path. A missing file is not an
// error: the defaults are returned with path set, so Save creates it.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			cfg := NewDefault()
			cfg.path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{ArchiveFile: DefaultArchiveFile}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalid, absPath, err)
	}
	cfg.path = absPath

	if err := migrate(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
