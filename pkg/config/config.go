package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
	"github.com/harrisonrobin/dayplan/pkg/scheduler"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "dayplan"
	configFile = "config.yaml"

	DefaultCalendar = "Tasks"
	DefaultLogLevel = "info"
)

type WorkingHours struct {
	Start clock.Clock `yaml:"start"`
	End   clock.Clock `yaml:"end"`
}

type LunchBreak struct {
	Duration      int         `yaml:"duration"`
	PreferredTime clock.Clock `yaml:"preferred_time"`
	Reserve       bool        `yaml:"reserve"`
}

type Config struct {
	WorkingHours  WorkingHours `yaml:"working_hours"`
	BreakDuration int          `yaml:"break_duration"`
	Granularity   int          `yaml:"granularity"`
	LunchBreak    LunchBreak   `yaml:"lunch_break"`
	Calendar      string       `yaml:"calendar"`
	LogLevel      string       `yaml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	def := scheduler.DefaultConfig()
	return &Config{
		WorkingHours: WorkingHours{
			Start: def.WorkingHours.Start,
			End:   def.WorkingHours.End,
		},
		BreakDuration: def.BreakDuration,
		Granularity:   def.Granularity,
		LunchBreak: LunchBreak{
			Duration:      def.LunchBreak.Duration,
			PreferredTime: def.LunchBreak.PreferredTime,
			Reserve:       def.LunchBreak.Reserve,
		},
		Calendar: DefaultCalendar,
		LogLevel: DefaultLogLevel,
	}
}

// SchedulerConfig maps the file settings onto the scheduler's configuration.
func (c *Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		WorkingHours: model.WorkingHours{
			Start: c.WorkingHours.Start,
			End:   c.WorkingHours.End,
		},
		BreakDuration: c.BreakDuration,
		Granularity:   c.Granularity,
		LunchBreak: scheduler.LunchBreak{
			Duration:      c.LunchBreak.Duration,
			PreferredTime: c.LunchBreak.PreferredTime,
			Reserve:       c.LunchBreak.Reserve,
		},
	}
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

func resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return GetConfigPath()
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path, err := resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Calendar == "" {
		cfg.Calendar = DefaultCalendar
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg, nil
}

// Save writes cfg to path, or the default location when path is empty.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	path, err := resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
