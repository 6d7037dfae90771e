package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/harrisonrobin/dayplan/pkg/config"
	"github.com/harrisonrobin/dayplan/pkg/logging"
	"github.com/harrisonrobin/dayplan/pkg/model"
	"github.com/harrisonrobin/dayplan/pkg/orgmode"
	"github.com/harrisonrobin/dayplan/pkg/tasklist"
	"github.com/harrisonrobin/dayplan/pkg/taskwarrior"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type importOptions struct {
	date    string
	replace bool
}

func newImportCmd(g *globals) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert tasks from other tools into the task list",
	}
	cmd.PersistentFlags().StringVar(&opts.date, "date", "", "day deadlines are resolved against, YYYY-MM-DD (default today)")
	cmd.PersistentFlags().BoolVar(&opts.replace, "replace", false, "replace the task list instead of appending")

	cmd.AddCommand(newImportTaskwarriorCmd(g, opts), newImportOrgCmd(g, opts))
	return cmd
}

func newImportTaskwarriorCmd(g *globals, opts *importOptions) *cobra.Command {
	var filter []string

	cmd := &cobra.Command{
		Use:   "taskwarrior [file|-]",
		Short: "Import pending tasks from Taskwarrior",
		Long: `Import pending, unblocked tasks from Taskwarrior. Reads a "task export"
JSON file, or stdin with "-", or runs "task export" when no file is given.
The "est" UDA (ISO 8601, e.g. PT1H30M) becomes the duration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(opts.date)
			if err != nil {
				return err
			}
			log, err := g.logger(cmd)
			if err != nil {
				return err
			}

			client := taskwarrior.NewClient()
			var twTasks []taskwarrior.Task
			switch {
			case len(args) == 0:
				twTasks, err = client.GetTasks(cmd.Context(), filter)
			case args[0] == "-":
				twTasks, err = client.ParseTasks(cmd.InOrStdin())
			default:
				twTasks, err = parseTaskwarriorFile(client, args[0])
			}
			if err != nil {
				return err
			}

			tasks, err := taskwarrior.ToModel(twTasks, day)
			if err != nil {
				return err
			}
			log.Debug().Int("read", len(twTasks)).Int("pending", len(tasks)).Msg("taskwarrior import")
			return g.merge(cmd.OutOrStdout(), log, tasks, opts.replace)
		},
	}
	cmd.Flags().StringSliceVar(&filter, "filter", []string{"status:pending"}, "filter passed to task export")
	return cmd
}

func parseTaskwarriorFile(client *taskwarrior.Client, path string) ([]taskwarrior.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return client.ParseTasks(f)
}

func newImportOrgCmd(g *globals, opts *importOptions) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "org <file>...",
		Short: "Import TODO headlines from Org-mode files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(opts.date)
			if err != nil {
				return err
			}
			log, err := g.logger(cmd)
			if err != nil {
				return err
			}

			tasks, err := orgmode.NewParser(day, tag, log).ParseFiles(args)
			if err != nil {
				return err
			}
			return g.merge(cmd.OutOrStdout(), log, tasks, opts.replace)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only import headlines with this tag")
	return cmd
}

func (g *globals) logger(cmd *cobra.Command) (zerolog.Logger, error) {
	level := g.logLevel
	if level == "" {
		cfg, err := config.Load(g.configPath)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = cfg.LogLevel
	}
	return logging.New(level, cmd.ErrOrStderr()), nil
}

// merge adds imported tasks to the task list. Tasks whose ID is already
// present are skipped.
func (g *globals) merge(w io.Writer, log zerolog.Logger, tasks []model.Task, replace bool) error {
	list := &tasklist.List{}
	if !replace {
		var err error
		if list, err = tasklist.Load(g.tasksPath); err != nil {
			return err
		}
	}

	added, skipped := 0, 0
	for _, t := range tasks {
		if _, exists := list.Get(t.ID); exists {
			log.Debug().Str("task_id", t.ID).Str("task", t.Name).Msg("already in task list, skipping")
			skipped++
			continue
		}
		if _, err := list.Add(t); err != nil {
			return fmt.Errorf("import %q: %w", t.Name, err)
		}
		added++
	}

	if err := tasklist.Save(g.tasksPath, list); err != nil {
		return err
	}
	fmt.Fprintf(w, "Imported %d task(s), skipped %d\n", added, skipped)
	return nil
}
