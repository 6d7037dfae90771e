package cli

import (
	"github.com/harrisonrobin/dayplan/pkg/google"
	"github.com/harrisonrobin/dayplan/pkg/tasklist"
	"github.com/spf13/cobra"
)

func newExportCmd(g *globals) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the planned day as Google Calendar event JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			cfg, log, s, err := g.setup(cmd)
			if err != nil {
				return err
			}
			list, err := tasklist.Load(g.tasksPath)
			if err != nil {
				return err
			}

			result := s.Plan(list.Tasks)
			events := google.EventList(cfg.Calendar, result.Schedule, day)
			log.Debug().Str("calendar", cfg.Calendar).Int("events", len(events.Items)).Msg("exporting")
			if len(result.Unscheduled) > 0 {
				log.Warn().Int("count", len(result.Unscheduled)).Msg("some tasks did not fit and are not exported")
			}
			return writeJSON(cmd.OutOrStdout(), events)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day of the events, YYYY-MM-DD (default today)")
	return cmd
}
