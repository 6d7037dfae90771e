// Package cli wires the dayplan commands together.
package cli

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/config"
	"github.com/harrisonrobin/dayplan/pkg/logging"
	"github.com/harrisonrobin/dayplan/pkg/scheduler"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var Version = "dev"

const (
	defaultTasksFile = "tasks.yaml"
	dateLayout       = "2006-01-02"
)

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	tasksPath  string
	logLevel   string
	start      string
	end        string
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:     "dayplan",
		Version: Version,
		Short:   "Fit a day's tasks into working hours",
		Long: `dayplan orders tasks by urgency and places each one in the best free
slot of the working day, favouring productive hours and closing short gaps
into breaks.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default ~/.config/dayplan/config.yaml)")
	pf.StringVar(&g.tasksPath, "tasks", defaultTasksFile, "task list file")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.start, "start", "", "start of working hours, HH:MM")
	pf.StringVar(&g.end, "end", "", "end of working hours, HH:MM")

	root.AddCommand(
		newPlanCmd(g),
		newExportCmd(g),
		newAddCmd(g),
		newRemoveCmd(g),
		newMoveCmd(g),
		newImportCmd(g),
		newWatchCmd(g),
		newConfigCmd(g),
		newInitCmd(g),
	)
	return root
}

// Execute runs the dayplan command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the config file and applies flag overrides.
func (g *globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.start != "" {
		if cfg.WorkingHours.Start, err = clock.Parse(g.start); err != nil {
			return nil, fmt.Errorf("--start: %w", err)
		}
	}
	if g.end != "" {
		if cfg.WorkingHours.End, err = clock.Parse(g.end); err != nil {
			return nil, fmt.Errorf("--end: %w", err)
		}
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	return cfg, nil
}

// setup loads the configuration and returns a logger and scheduler for it.
func (g *globals) setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, *scheduler.Scheduler, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	s, err := scheduler.New(cfg.SchedulerConfig(), scheduler.WithLogger(log))
	if err != nil {
		return nil, log, nil, err
	}
	return cfg, log, s, nil
}

// parseDay reads a --date value in local time. Empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	day, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return day, nil
}
