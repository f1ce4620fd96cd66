package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove [title]",
	Aliases: []string{"rm"},
	Short:   "Remove a task",
	Long:    `Remove a task from the quest log. The title is fuzzy matched.`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := checklist.RemoveTask(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to remove task: %w", err)
		}

		if jsonOutput {
			return printJSON(taskJSON(task))
		}

		fmt.Printf("🗑️ Task removed: %s\n", task.Title)
		return nil
	},
}
