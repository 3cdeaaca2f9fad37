package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CityEntry is one tracked city in the config file. The first entry is the
// home city.
type CityEntry struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

type Config struct {
	// Cities seeds the tracked list; the first entry is home.
	Cities []CityEntry `yaml:"cities"`

	// HourFormat is 12 or 24.
	HourFormat int `yaml:"hour_format"`

	// ExportDir is where `export` writes .ics files.
	ExportDir string `yaml:"export_dir"`

	LogLevel string `yaml:"log_level"`

	// Tick is the clock refresh period. Env-only (GLC_TICK); the YAML file
	// never needs to change it.
	Tick time.Duration `yaml:"-"`
}

func Default() Config {
	return Config{
		Cities: []CityEntry{
			{Name: "Vancouver", Timezone: "America/Vancouver"},
			{Name: "London", Timezone: "Europe/London"},
			{Name: "Tokyo", Timezone: "Asia/Tokyo"},
		},
		HourFormat: 12,
		ExportDir:  ".",
		LogLevel:   "info",
		Tick:       time.Second,
	}
}

// Load reads the YAML file at path (GLC_CONFIG when path is empty), layers
// environment overrides on top, fills gaps from Default and validates. A
// missing file is not an error: the defaults are the first-run seed.
func Load(path string) (Config, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("GLC_CONFIG"))
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// first run, keep defaults
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
			cfg.merge(fileCfg)
		}
	}

	cfg.LogLevel = getenvDefault("GLC_LOG_LEVEL", cfg.LogLevel)
	cfg.ExportDir = getenvDefault("GLC_EXPORT_DIR", cfg.ExportDir)
	cfg.HourFormat = getenvInt("GLC_HOUR_FORMAT", cfg.HourFormat)
	cfg.Tick = getenvDuration("GLC_TICK", cfg.Tick)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(file Config) {
	if len(file.Cities) > 0 {
		c.Cities = file.Cities
	}
	if file.HourFormat != 0 {
		c.HourFormat = file.HourFormat
	}
	if file.ExportDir != "" {
		c.ExportDir = file.ExportDir
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
}

func (c Config) Validate() error {
	if len(c.Cities) == 0 {
		return errors.New("at least one city is required")
	}
	for _, city := range c.Cities {
		if strings.TrimSpace(city.Name) == "" {
			return errors.New("city name must not be empty")
		}
		if strings.TrimSpace(city.Timezone) == "" {
			return fmt.Errorf("city %q needs a timezone identifier", city.Name)
		}
	}
	if c.HourFormat != 12 && c.HourFormat != 24 {
		return fmt.Errorf("hour_format must be 12 or 24, got %d", c.HourFormat)
	}
	if c.Tick <= 0 {
		return errors.New("tick must be > 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
