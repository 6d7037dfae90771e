package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrisonrobin/dayplan/pkg/scheduler"
	"github.com/harrisonrobin/dayplan/pkg/tasklist"
	"github.com/harrisonrobin/dayplan/pkg/watch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globals) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-plan whenever the task list changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, s, err := g.setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			replan := func() { g.replan(out, log, s) }

			w, err := watch.NewFileWatcher(g.tasksPath, debounce, log, replan)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			replan()
			log.Info().Str("tasks", g.tasksPath).Msg("watching for changes")
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-planning")
	return cmd
}

// replan logs load errors instead of returning them so a half-saved file does
// not end the watch.
func (g *globals) replan(w io.Writer, log zerolog.Logger, s *scheduler.Scheduler) {
	list, err := tasklist.Load(g.tasksPath)
	if err != nil {
		log.Error().Err(err).Str("tasks", g.tasksPath).Msg("could not load task list")
		return
	}
	fmt.Fprintf(w, "\n== %s ==\n", time.Now().Format("15:04:05"))
	if err := renderResult(w, s.Plan(list.Tasks)); err != nil {
		log.Error().Err(err).Msg("could not render schedule")
	}
}
