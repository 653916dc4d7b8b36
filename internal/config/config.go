package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// Valid values for the enumerated settings.
var (
	States     = []string{"all", "open", "closed"}
	Sorts      = []string{"created", "updated", "comments"}
	Directions = []string{"asc", "desc"}
	PageSizes  = []int{10, 25, 50}
)

// DefaultTokenEnv is the environment variable consulted for the API
// token when token_env is not configured.
const DefaultTokenEnv = "GITHUB_TOKEN"

// Config holds the issuetop configuration.
type Config struct {
	State     string          `toml:"state"`
	PageSize  int             `toml:"page_size"`
	Sort      string          `toml:"sort"`
	Direction string          `toml:"direction"`
	TokenEnv  string          `toml:"token_env"`
	Columns   map[string]bool `toml:"columns"` // column id -> visible
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		State:     "all",
		PageSize:  25,
		Sort:      "created",
		Direction: "desc",
		TokenEnv:  DefaultTokenEnv,
	}
}

// Token resolves the API token from the configured environment variable.
// Empty means unauthenticated.
func (c *Config) Token() string {
	env := c.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	return os.Getenv(env)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(States, c.State) {
		return fmt.Errorf("invalid state %q: must be one of %v", c.State, States)
	}
	if !slices.Contains(PageSizes, c.PageSize) {
		return fmt.Errorf("invalid page_size %d: must be one of %v", c.PageSize, PageSizes)
	}
	if !slices.Contains(Sorts, c.Sort) {
		return fmt.Errorf("invalid sort %q: must be one of %v", c.Sort, Sorts)
	}
	if !slices.Contains(Directions, c.Direction) {
		return fmt.Errorf("invalid direction %q: must be one of %v", c.Direction, Directions)
	}
	return nil
}

// Dir returns the issuetop configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "issuetop"), nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from ~/.config/issuetop/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path. Missing-file semantics
// match Load.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
