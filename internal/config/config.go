package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/studiowebux/resters/internal/filter"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.resters)
	ConfigDir string

	// ConfigFile is the YAML configuration file read by viper
	ConfigFile string

	// DatabasePath is the SQLite database file for fetch history
	DatabasePath string

	// SessionFile is the session state file
	SessionFile string

	// LogFile is the default log file
	LogFile string
)

// Config holds all application configuration
type Config struct {
	Fetch    FetchConfig       `mapstructure:"fetch"`
	UI       UIConfig          `mapstructure:"ui"`
	History  HistoryConfig     `mapstructure:"history"`
	Logging  LoggingConfig     `mapstructure:"logging"`
	Keybinds map[string]string `mapstructure:"keybinds"` // action -> comma separated keys
}

// FetchConfig controls how requests are built and polled
type FetchConfig struct {
	Method       string        `mapstructure:"method"`        // Initial method, GET or POST
	Scheme       string        `mapstructure:"scheme"`        // Prepended when the URL has none
	PollInterval time.Duration `mapstructure:"poll_interval"` // Progress tick while waiting
	Query        string        `mapstructure:"query"`         // Optional JMESPath applied to JSON bodies
	Presets      []string      `mapstructure:"presets"`       // URL suggestions
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"` // chroma style name for the body palette
	ProgressMin int    `mapstructure:"progress_min"`
	ProgressMax int    `mapstructure:"progress_max"`
}

// HistoryConfig holds fetch history settings
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultPresets are the URLs offered before the user types anything
var DefaultPresets = []string{
	"https://jsonplaceholder.typicode.com/users",
	"https://jsonplaceholder.typicode.com/posts",
	"https://jsonplaceholder.typicode.com/albums",
	"https://jsonplaceholder.typicode.com/todos",
	"https://jsonplaceholder.typicode.com/comments",
	"https://lingva.thedaviddelta.com/api/v1/languages",
	"https://lingva.thedaviddelta.com/api/v1/en/de/mother",
	"https://ipinfo.io/json",
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	presets := make([]string, len(DefaultPresets))
	copy(presets, DefaultPresets)

	return &Config{
		Fetch: FetchConfig{
			Method:       "GET",
			Scheme:       "https://",
			PollInterval: 20 * time.Millisecond,
			Presets:      presets,
		},
		UI: UIConfig{
			Theme:       "solarized-dark",
			ProgressMin: 0,
			ProgressMax: 90,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   50,
		},
		Logging: LoggingConfig{
			File:  LogFile,
			Level: "info",
		},
		Keybinds: map[string]string{},
	}
}

// Initialize sets up the configuration directories
// It creates ~/.resters/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".resters"))
}

// InitializeAt sets the global paths relative to dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "resters.db")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	LogFile = filepath.Join(ConfigDir, "resters.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Load reads the configuration file (if any) and environment overrides.
// An explicit path overrides the default config file location.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if ConfigDir != "" {
			v.AddConfigPath(ConfigDir)
		}
		v.AddConfigPath(".")
	}

	// Environment variable overrides (RESTERS_FETCH_SCHEME, ...)
	v.SetEnvPrefix("RESTERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("fetch.method", cfg.Fetch.Method)
	v.SetDefault("fetch.scheme", cfg.Fetch.Scheme)
	v.SetDefault("fetch.poll_interval", cfg.Fetch.PollInterval)
	v.SetDefault("fetch.query", cfg.Fetch.Query)
	v.SetDefault("fetch.presets", cfg.Fetch.Presets)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.progress_min", cfg.UI.ProgressMin)
	v.SetDefault("ui.progress_max", cfg.UI.ProgressMax)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.limit", cfg.History.Limit)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks values that would otherwise break the fetch loop
func (c *Config) Validate() error {
	if c.Fetch.PollInterval <= 0 {
		return fmt.Errorf("fetch.poll_interval must be positive, got %s", c.Fetch.PollInterval)
	}
	if c.UI.ProgressMax-c.UI.ProgressMin < 2 {
		return fmt.Errorf("ui.progress_max (%d) must exceed ui.progress_min (%d) by at least 2", c.UI.ProgressMax, c.UI.ProgressMin)
	}
	if c.Fetch.Query != "" && !filter.IsValidJMESPath(c.Fetch.Query) {
		return fmt.Errorf("fetch.query is not a valid JMESPath expression: %q", c.Fetch.Query)
	}
	if c.History.Limit <= 0 {
		c.History.Limit = 50
	}
	return nil
}
