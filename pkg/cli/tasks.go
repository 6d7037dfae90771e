package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
	"github.com/harrisonrobin/dayplan/pkg/tasklist"
	"github.com/spf13/cobra"
)

func newAddCmd(g *globals) *cobra.Command {
	var (
		id       string
		duration int
		priority string
		deadline string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Append a task to the task list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			task := model.Task{
				ID:       id,
				Name:     strings.Join(args, " "),
				Duration: duration,
				Priority: p,
			}
			if deadline != "" {
				c, err := clock.Parse(deadline)
				if err != nil {
					return fmt.Errorf("--deadline: %w", err)
				}
				task.Deadline = &c
			}

			list, err := tasklist.Load(g.tasksPath)
			if err != nil {
				return err
			}
			added, err := list.Add(task)
			if err != nil {
				return err
			}
			if err := tasklist.Save(g.tasksPath, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "task id (generated when empty)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 30, "duration in minutes")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "high, medium or low")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline, HH:MM")
	return cmd
}

func newRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task from the task list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := tasklist.Load(g.tasksPath)
			if err != nil {
				return err
			}
			if err := list.Remove(args[0]); err != nil {
				return err
			}
			if err := tasklist.Save(g.tasksPath, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newMoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move a task to a zero-based position in the task list",
		Long: `Move a task within the task list. Tasks of equal urgency are placed in
list order, so moving a task up gives it the earlier pick of slots.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			list, err := tasklist.Load(g.tasksPath)
			if err != nil {
				return err
			}
			if err := list.Move(args[0], pos); err != nil {
				return err
			}
			if err := tasklist.Save(g.tasksPath, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", args[0])
			return nil
		},
	}
}
