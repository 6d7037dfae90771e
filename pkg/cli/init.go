package cli

import (
	"fmt"
	"os"

	"github.com/harrisonrobin/dayplan/pkg/tasklist"
	"github.com/spf13/cobra"
)

func newInitCmd(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(g.tasksPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", g.tasksPath)
			}
			if err := tasklist.Save(g.tasksPath, tasklist.Sample()); err != nil {
				return fmt.Errorf("failed to write sample tasks: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample tasks to %s\n", g.tasksPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing task list")
	return cmd
}
