// Package config handles loading focus.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/amonks/focus/internal/paths"
	"github.com/amonks/focus/internal/validation"
	"github.com/amonks/focus/session"
	"github.com/amonks/focus/stats"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "focus.toml"

// ErrInvalidConfig is returned when a config value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Backend selects the record store.
type Backend string

const (
	// BackendJSONL stores records in JSON Lines files.
	BackendJSONL Backend = "jsonl"
	// BackendSQLite stores records in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// ValidBackends returns all supported backends.
func ValidBackends() []Backend {
	return []Backend{BackendJSONL, BackendSQLite}
}

// Config represents the focus.toml configuration file.
type Config struct {
	User    User    `toml:"user"`
	Goals   Goals   `toml:"goals"`
	Timer   Timer   `toml:"timer"`
	Storage Storage `toml:"storage"`
}

// User identifies whose records the CLI reads and writes.
type User struct {
	// ID defaults to $USER.
	ID string `toml:"id"`
	// TimeZone is an IANA zone name used for day boundaries. Empty means local.
	TimeZone string `toml:"time-zone"`
}

// Goals contains daily targets.
type Goals struct {
	DailyMinutes int `toml:"daily-minutes"`
}

// Timer contains session lengths in minutes.
type Timer struct {
	FocusMinutes           int `toml:"focus-minutes"`
	BreakMinutes           int `toml:"break-minutes"`
	LongBreakMinutes       int `toml:"long-break-minutes"`
	SessionsUntilLongBreak int `toml:"sessions-until-long-break"`
}

// Storage selects where records live.
type Storage struct {
	Backend Backend `toml:"backend"`
	// Dir holds the record files. A leading "~" is expanded.
	Dir string `toml:"dir"`
}

// Load merges the global config file with focus.toml in workDir.
// Values defined in the project file win. Missing files are ignored.
func Load(workDir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(workDir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)
	return finish(merged)
}

// LoadFile loads a single config file. Unlike Load, the file must exist.
func LoadFile(path string) (*Config, error) {
	expanded, err := paths.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(expanded); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", expanded, err)
	}
	cfg, _, err := loadConfigFile(expanded)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.User.ID = mergeString(projectMeta.IsDefined("user", "id"), projectCfg.User.ID, globalCfg.User.ID)
	merged.User.TimeZone = mergeString(projectMeta.IsDefined("user", "time-zone"), projectCfg.User.TimeZone, globalCfg.User.TimeZone)
	merged.Goals.DailyMinutes = mergeValue(projectMeta.IsDefined("goals", "daily-minutes"), projectCfg.Goals.DailyMinutes, globalCfg.Goals.DailyMinutes)
	merged.Timer.FocusMinutes = mergeValue(projectMeta.IsDefined("timer", "focus-minutes"), projectCfg.Timer.FocusMinutes, globalCfg.Timer.FocusMinutes)
	merged.Timer.BreakMinutes = mergeValue(projectMeta.IsDefined("timer", "break-minutes"), projectCfg.Timer.BreakMinutes, globalCfg.Timer.BreakMinutes)
	merged.Timer.LongBreakMinutes = mergeValue(projectMeta.IsDefined("timer", "long-break-minutes"), projectCfg.Timer.LongBreakMinutes, globalCfg.Timer.LongBreakMinutes)
	merged.Timer.SessionsUntilLongBreak = mergeValue(projectMeta.IsDefined("timer", "sessions-until-long-break"), projectCfg.Timer.SessionsUntilLongBreak, globalCfg.Timer.SessionsUntilLongBreak)
	merged.Storage.Backend = Backend(mergeString(projectMeta.IsDefined("storage", "backend"), string(projectCfg.Storage.Backend), string(globalCfg.Storage.Backend)))
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	return strings.TrimSpace(mergeValue(projectDefined, projectValue, globalValue))
}

func mergeValue[T any](projectDefined bool, projectValue, globalValue T) T {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func (cfg *Config) applyDefaults() {
	if cfg.User.ID == "" {
		cfg.User.ID = strings.TrimSpace(os.Getenv("USER"))
	}
	if cfg.Goals.DailyMinutes == 0 {
		cfg.Goals.DailyMinutes = stats.DefaultGoalMinutes
	}
	defaults := session.DefaultTimer()
	if cfg.Timer.FocusMinutes == 0 {
		cfg.Timer.FocusMinutes = defaults.FocusMinutes
	}
	if cfg.Timer.BreakMinutes == 0 {
		cfg.Timer.BreakMinutes = defaults.BreakMinutes
	}
	if cfg.Timer.LongBreakMinutes == 0 {
		cfg.Timer.LongBreakMinutes = defaults.LongBreakMinutes
	}
	if cfg.Timer.SessionsUntilLongBreak == 0 {
		cfg.Timer.SessionsUntilLongBreak = defaults.SessionsUntilLongBreak
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendJSONL
	}
}

// Validate reports the first out-of-range value.
func (cfg *Config) Validate() error {
	if cfg.Goals.DailyMinutes < 0 {
		return fmt.Errorf("%w: goals.daily-minutes must not be negative, got %d", ErrInvalidConfig, cfg.Goals.DailyMinutes)
	}
	timer := []struct {
		key   string
		value int
	}{
		{"timer.focus-minutes", cfg.Timer.FocusMinutes},
		{"timer.break-minutes", cfg.Timer.BreakMinutes},
		{"timer.long-break-minutes", cfg.Timer.LongBreakMinutes},
		{"timer.sessions-until-long-break", cfg.Timer.SessionsUntilLongBreak},
	}
	for _, field := range timer {
		if field.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, field.key, field.value)
		}
	}
	backendValid := false
	for _, backend := range ValidBackends() {
		if cfg.Storage.Backend == backend {
			backendValid = true
		}
	}
	if !backendValid {
		return validation.FormatInvalidValueError(ErrInvalidConfig, cfg.Storage.Backend, ValidBackends())
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured time zone, or time.Local.
func (cfg *Config) Location() (*time.Location, error) {
	if cfg.User.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.User.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: user.time-zone %q: %v", ErrInvalidConfig, cfg.User.TimeZone, err)
	}
	return loc, nil
}

// SessionTimer returns the timer settings for the session manager.
func (cfg *Config) SessionTimer() session.Timer {
	return session.Timer{
		FocusMinutes:           cfg.Timer.FocusMinutes,
		BreakMinutes:           cfg.Timer.BreakMinutes,
		LongBreakMinutes:       cfg.Timer.LongBreakMinutes,
		SessionsUntilLongBreak: cfg.Timer.SessionsUntilLongBreak,
	}
}

// DataDir returns the directory holding records.
func (cfg *Config) DataDir() (string, error) {
	if cfg.Storage.Dir == "" {
		return paths.DefaultDataDir()
	}
	return paths.ExpandHome(cfg.Storage.Dir)
}
