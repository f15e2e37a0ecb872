// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const appName = "aistack"

// Config holds every runtime setting. Zero values are filled from
// envDefault tags by Load.
type Config struct {
	DBPath        string        `env:"AISTACK_DB"`
	LogFile       string        `env:"AISTACK_LOG_FILE"`
	LogLevel      string        `env:"AISTACK_LOG_LEVEL"      envDefault:"info"`
	CatalogFile   string        `env:"AISTACK_CATALOG"`
	FeedbackDelay time.Duration `env:"AISTACK_FEEDBACK_DELAY" envDefault:"1s"`
	SettleDelay   time.Duration `env:"AISTACK_SETTLE_DELAY"   envDefault:"1s"`
	ReadyDelay    time.Duration `env:"AISTACK_READY_DELAY"    envDefault:"3s"`
	ConfirmDelay  time.Duration `env:"AISTACK_CONFIRM_DELAY"  envDefault:"1s"`
	ProfileForm   bool          `env:"AISTACK_PROFILE_FORM"   envDefault:"false"`
	Seed          uint64        `env:"AISTACK_SEED"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		FeedbackDelay: time.Second,
		SettleDelay:   time.Second,
		ReadyDelay:    3 * time.Second,
		ConfirmDelay:  time.Second,
	}
}

// Load parses the environment on top of the defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FieldError reports an invalid setting.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

var levels = []string{"debug", "info", "warn", "error", "off"}

// Validate checks that settings are usable.
func (c Config) Validate() error {
	var errs []error
	if c.FeedbackDelay <= 0 {
		errs = append(errs, &FieldError{Field: "feedback delay", Reason: "must be positive"})
	}
	if c.SettleDelay <= 0 {
		errs = append(errs, &FieldError{Field: "settle delay", Reason: "must be positive"})
	}
	if c.ReadyDelay <= 0 {
		errs = append(errs, &FieldError{Field: "ready delay", Reason: "must be positive"})
	}
	if c.ConfirmDelay < 0 {
		errs = append(errs, &FieldError{Field: "confirm delay", Reason: "must not be negative"})
	}
	lvl := strings.ToLower(c.LogLevel)
	valid := false
	for _, l := range levels {
		if lvl == l {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, &FieldError{Field: "log level", Reason: fmt.Sprintf("%q is not one of %s", c.LogLevel, strings.Join(levels, ", "))})
	}
	return errors.Join(errs...)
}

// LoggingEnabled reports whether a log file should be written.
func (c Config) LoggingEnabled() bool {
	return strings.ToLower(c.LogLevel) != "off"
}

// ResolveDBPath returns the database file path in priority order:
// 1. AISTACK_DB (or a --db flag copied into DBPath)
// 2. $XDG_DATA_HOME/aistack/aistack.db
// 3. ~/.local/share/aistack/aistack.db
// The parent directory is created.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, EnsureDir(c.DBPath)
	}
	dir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, appName, appName+".db")
	return p, EnsureDir(p)
}

// ResolveLogFile returns the log file path:
// AISTACK_LOG_FILE, then $XDG_STATE_HOME/aistack/aistack.log, then
// ~/.local/state/aistack/aistack.log.
func (c Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, EnsureDir(c.LogFile)
	}
	dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, appName, appName+".log")
	return p, EnsureDir(p)
}

func xdgDir(envVar string, fallback ...string) (string, error) {
	if d := os.Getenv(envVar); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
