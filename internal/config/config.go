// Package config loads the application configuration.
//
// The config file is looked up via $FABULA_CONFIG, then ./fabula.yaml,
// then the XDG config directory. A .env file in the working directory is
// honored, and the FABULA_DB and FABULA_AVATARS environment variables
// override the file values.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Avatars   AvatarConfig    `yaml:"avatars"`
	Relations RelationsConfig `yaml:"relations"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AvatarConfig locates the avatar image directory.
type AvatarConfig struct {
	Dir string `yaml:"dir"`
}

// RelationsConfig optionally points at a relation-type seed file used by
// database initialization. Empty means the bundled definitions.
type RelationsConfig struct {
	SeedPath string `yaml:"seed_path"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	// Optional; absence of a .env file is the normal case.
	_ = godotenv.Load()

	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, path, nil
}

// DefaultConfig returns the defaults for a fresh installation.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./fabula.db"},
		Avatars:  AvatarConfig{Dir: "./avatars"},
	}
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./fabula.db"
	}
	if c.Avatars.Dir == "" {
		c.Avatars.Dir = "./avatars"
	}
}

func (c *Config) applyEnv() {
	if db := os.Getenv("FABULA_DB"); db != "" {
		c.Database.Path = db
	}
	if dir := os.Getenv("FABULA_AVATARS"); dir != "" {
		c.Avatars.Dir = dir
	}
}
