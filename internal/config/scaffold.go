package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with durations spelled as strings, the way they
// are written in the file.
type fileConfig struct {
	API struct {
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
		Retries int    `toml:"retries"`
	} `toml:"api"`
	Widget struct {
		Surfaces int    `toml:"surfaces"`
		Dwell    string `toml:"dwell"`
		Refresh  string `toml:"refresh"`
	} `toml:"widget"`
	Schedule struct {
		CacheTTL string `toml:"cache_ttl"`
	} `toml:"schedule"`
	State struct {
		Dir string `toml:"dir"`
	} `toml:"state"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	Metrics struct {
		Textfile string `toml:"textfile"`
	} `toml:"metrics"`
}

func toFile(c Config) fileConfig {
	var f fileConfig
	f.API.BaseURL = c.API.BaseURL
	f.API.Timeout = c.API.Timeout.String()
	f.API.Retries = c.API.Retries
	f.Widget.Surfaces = c.Widget.Surfaces
	f.Widget.Dwell = c.Widget.Dwell.String()
	f.Widget.Refresh = c.Widget.Refresh
	f.Schedule.CacheTTL = c.Schedule.CacheTTL.String()
	f.State.Dir = c.State.Dir
	f.Log.Level = c.Log.Level
	f.Log.File = c.Log.File
	f.Metrics.Textfile = c.Metrics.Textfile
	return f
}

// ErrConfigExists is returned by InitFile when the file is already there
var ErrConfigExists = errors.New("config file already exists")

// InitFile writes the default configuration to path. An existing file is
// only replaced when force is set.
func InitFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintln(f, "# analog configuration. Environment variables ANALOG_<SECTION>_<KEY> override these values."); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(toFile(Defaults())); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}
