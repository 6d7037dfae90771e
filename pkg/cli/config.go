package cli

import (
	"fmt"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/config"
	"github.com/harrisonrobin/dayplan/pkg/scheduler"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(g *globals) *cobra.Command {
	var (
		breakDuration int
		granularity   int
		lunchDuration int
		lunchAt       string
		reserveLunch  bool
		calendar      string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the saved configuration",
		Long: `Without flags, print the effective configuration. Any of the flags below,
as well as --start, --end and --log-level, are written to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			changed := flags.Changed("start") || flags.Changed("end") || flags.Changed("log-level")
			if flags.Changed("break") {
				cfg.BreakDuration = breakDuration
				changed = true
			}
			if flags.Changed("granularity") {
				cfg.Granularity = granularity
				changed = true
			}
			if flags.Changed("lunch-duration") {
				cfg.LunchBreak.Duration = lunchDuration
				changed = true
			}
			if flags.Changed("lunch-at") {
				if cfg.LunchBreak.PreferredTime, err = clock.Parse(lunchAt); err != nil {
					return fmt.Errorf("--lunch-at: %w", err)
				}
				changed = true
			}
			if flags.Changed("reserve-lunch") {
				cfg.LunchBreak.Reserve = reserveLunch
				changed = true
			}
			if flags.Changed("calendar") {
				cfg.Calendar = calendar
				changed = true
			}

			if changed {
				if _, err := scheduler.New(cfg.SchedulerConfig()); err != nil {
					return err
				}
				if err := config.Save(g.configPath, cfg); err != nil {
					return err
				}
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&breakDuration, "break", scheduler.DefaultBreakDuration, "break length in minutes; shorter gaps between tasks are extended to it")
	f.IntVar(&granularity, "granularity", scheduler.DefaultGranularity, "minutes between candidate start times")
	f.IntVar(&lunchDuration, "lunch-duration", 60, "lunch break length, in minutes")
	f.StringVar(&lunchAt, "lunch-at", "12:00", "preferred lunch time, HH:MM")
	f.BoolVar(&reserveLunch, "reserve-lunch", false, "keep the lunch window free of tasks")
	f.StringVar(&calendar, "calendar", config.DefaultCalendar, "calendar name written into exports")
	return cmd
}
