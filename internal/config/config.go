// Package config resolves runtime settings from defaults, an optional .env
// file, the environment and command-line overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/store"
)

const (
	EnvDB    = "DAYTALLY_DB"
	EnvLang  = "DAYTALLY_LANG"
	EnvDebug = "DAYTALLY_DEBUG"
	EnvLog   = "DAYTALLY_LOG"
)

type Config struct {
	DBPath string
	// Language overrides the saved preference when set.
	Language string
	// Locale is the system locale used to guess a language.
	Locale  string
	Debug   bool
	LogPath string
}

// Overrides holds command line flag values; nil fields are not applied.
type Overrides struct {
	DBPath   *string
	Language *string
	Debug    *bool
}

// Load builds the configuration. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("default db path: %w", err)
	}
	cfg := &Config{DBPath: dbPath, Locale: os.Getenv("LANG")}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	cfg.Language = os.Getenv(EnvLang)
	cfg.Debug = os.Getenv(EnvDebug) != ""
	cfg.LogPath = os.Getenv(EnvLog)

	return cfg, cfg.Validate()
}

// Apply layers flag overrides on top and re-validates.
func (c *Config) Apply(o Overrides) error {
	if o.DBPath != nil && *o.DBPath != "" {
		c.DBPath = *o.DBPath
	}
	if o.Language != nil && *o.Language != "" {
		c.Language = *o.Language
	}
	if o.Debug != nil && *o.Debug {
		c.Debug = true
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.Language != "" {
		if _, ok := i18n.Parse(c.Language); !ok {
			return fmt.Errorf("unsupported language %q (want one of %v)", c.Language, i18n.Supported)
		}
	}
	return nil
}

// DebugLogPath is where debug logs go: LogPath, or a file next to the
// database.
func (c *Config) DebugLogPath() string {
	if c.LogPath != "" {
		return c.LogPath
	}
	if c.DBPath == ":memory:" {
		return "daytally-debug.log"
	}
	return filepath.Join(filepath.Dir(c.DBPath), "daytally-debug.log")
}
