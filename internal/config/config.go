// Package config loads analog settings from a TOML file, ANALOG_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment overrides, e.g. ANALOG_LOG_LEVEL
const EnvPrefix = "ANALOG"

// Config is the complete application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Widget   WidgetConfig   `mapstructure:"widget"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	State    StateConfig    `mapstructure:"state"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// APIConfig controls access to the status service
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// WidgetConfig controls the status tiles
type WidgetConfig struct {
	Surfaces int           `mapstructure:"surfaces"`
	Dwell    time.Duration `mapstructure:"dwell"`
	Refresh  string        `mapstructure:"refresh"` // cron spec; empty disables periodic refresh
}

// ScheduleConfig controls the opening-hours list
type ScheduleConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	NoCache  bool          `mapstructure:"no_cache"`
}

// StateConfig locates persisted state
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// MetricsConfig controls metrics export
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// MaxSurfaces is the number of tiles addressable with the digit keys
const MaxSurfaces = 9

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"base-url":  "api.base_url",
	"surfaces":  "widget.surfaces",
	"dwell":     "widget.dwell",
	"no-cache":  "schedule.no_cache",
	"state-dir": "state.dir",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://cafeanalog.dk/api",
			Timeout: 5 * time.Second,
			Retries: 2,
		},
		Widget: WidgetConfig{
			Surfaces: 2,
			Dwell:    500 * time.Millisecond,
			Refresh:  "*/15 * * * *",
		},
		Schedule: ScheduleConfig{
			CacheTTL: 10 * time.Minute,
		},
		State: StateConfig{
			Dir: DefaultStateDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.retries", d.API.Retries)
	v.SetDefault("widget.surfaces", d.Widget.Surfaces)
	v.SetDefault("widget.dwell", d.Widget.Dwell)
	v.SetDefault("widget.refresh", d.Widget.Refresh)
	v.SetDefault("schedule.cache_ttl", d.Schedule.CacheTTL)
	v.SetDefault("schedule.no_cache", d.Schedule.NoCache)
	v.SetDefault("state.dir", d.State.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// Load builds the configuration. path names the config file; when empty,
// ANALOG_CONFIG and then the default location are tried, and a missing
// default file is not an error. Flags that were set on the command line
// override everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values that would fail later at
// runtime. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.ParseRequestURI(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("api.base_url must be a valid http or https URL"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be > 0"))
	}
	if c.API.Retries < 0 {
		errs = append(errs, fmt.Errorf("api.retries must be >= 0"))
	}

	if c.Widget.Surfaces < 0 || c.Widget.Surfaces > MaxSurfaces {
		errs = append(errs, fmt.Errorf("widget.surfaces must be between 0 and %d", MaxSurfaces))
	}
	if c.Widget.Dwell < 0 {
		errs = append(errs, fmt.Errorf("widget.dwell must be >= 0"))
	}
	if c.Widget.Refresh != "" {
		if _, err := cron.ParseStandard(c.Widget.Refresh); err != nil {
			errs = append(errs, fmt.Errorf("widget.refresh is not a valid cron spec: %w", err))
		}
	}

	if c.Schedule.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("schedule.cache_ttl must be > 0"))
	}

	if c.State.Dir == "" {
		errs = append(errs, fmt.Errorf("state.dir must not be empty"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q is not a valid level", c.Log.Level))
	}

	return errors.Join(errs...)
}

// LogFile returns the configured log file, defaulting to analog.log in the
// state directory.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.State.Dir, "analog.log")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/analog or ~/.config/analog
func DefaultConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultConfigPath returns the config file looked up when no path is given
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// DefaultStateDir returns $XDG_STATE_HOME/analog or ~/.local/state/analog
func DefaultStateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, "analog")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback, "analog")
	}
	return filepath.Join(os.TempDir(), "analog")
}
