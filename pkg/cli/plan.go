package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harrisonrobin/dayplan/pkg/model"
	"github.com/harrisonrobin/dayplan/pkg/scheduler"
	"github.com/harrisonrobin/dayplan/pkg/tasklist"
	"github.com/spf13/cobra"
)

func newPlanCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Schedule the task list and print the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, s, err := g.setup(cmd)
			if err != nil {
				return err
			}
			list, err := tasklist.Load(g.tasksPath)
			if err != nil {
				return err
			}
			log.Debug().Str("tasks", g.tasksPath).Int("count", len(list.Tasks)).Msg("planning")

			result := s.Plan(list.Tasks)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return renderResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResult(w io.Writer, result scheduler.Result) error {
	if len(result.Schedule) == 0 {
		fmt.Fprintln(w, "Nothing scheduled.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tTASK\tPRIORITY\tDEADLINE\tSCORE\tID")
		for _, pt := range result.Schedule {
			fmt.Fprintf(tw, "%s-%s\t%s\t%s\t%s\t%.1f\t%s\n",
				pt.StartTime, pt.EndTime, pt.Name, pt.Priority, deadlineLabel(pt.Task), pt.OptimizationScore, pt.ID)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	m := result.Metrics
	fmt.Fprintf(w, "\nEfficiency %s  Coverage %s  Balance %s\n", percent(m.Efficiency), percent(m.Coverage), percent(m.Balance))

	if len(result.Unscheduled) > 0 {
		fmt.Fprintln(w, "\nUnscheduled:")
		for _, t := range result.Unscheduled {
			fmt.Fprintf(w, "  %s (%dm, %s)\n", t.Name, t.Duration, t.Priority)
		}
	}
	return nil
}

func deadlineLabel(t model.Task) string {
	if t.Deadline == nil {
		return "-"
	}
	return t.Deadline.String()
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
