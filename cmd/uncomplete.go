package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/ui"
)

// uncompleteCmd represents the uncomplete command
var uncompleteCmd = &cobra.Command{
	Use:   "uncomplete [title]",
	Short: "Reopen a completed task",
	Long: `Mark a completed task as pending again. Earned XP is kept; the task
can be completed again later for more XP.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := checklist.UncompleteTask(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to reopen task: %w", err)
		}

		if jsonOutput {
			return printJSON(taskJSON(task))
		}

		fmt.Printf("%s Task reopened: %s\n", ui.IconPending, task.Title)
		return nil
	},
}
