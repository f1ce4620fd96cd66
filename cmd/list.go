package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/services"
	"github.com/edaskel/questlog/internal/ui"
)

var (
	listAll      bool
	listCategory string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List pending tasks. Use --all to include completed tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tasks, err := checklist.ListTasks(ctx, services.ListTasksRequest{
			Category:         listCategory,
			IncludeCompleted: listAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if jsonOutput {
			payload := make([]map[string]interface{}, 0, len(tasks))
			for _, task := range tasks {
				payload = append(payload, taskJSON(task))
			}
			return printJSON(map[string]interface{}{
				"tasks":       payload,
				"total_count": len(payload),
			})
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks. Add one with \"questlog add\".")
			return nil
		}

		categories, err := checklist.Categories(ctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		byName := make(map[string]domain.Category, len(categories))
		for _, c := range categories {
			byName[c.Name] = c
		}

		for _, task := range tasks {
			icon := ui.IconPending
			title := task.Title
			if task.Completed {
				icon = ui.IconDone
				title = ui.Muted.Render(title)
			}

			label := task.Category
			if c, ok := byName[task.Category]; ok {
				label = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(
					fmt.Sprintf("%s %s", c.Emoji, c.DisplayName))
			}

			fmt.Printf("%s %s  %s  %s\n",
				icon, title,
				ui.Muted.Render(fmt.Sprintf("[%s/%s %d XP]", task.Type, task.Difficulty, task.XPValue)),
				label)
		}
		return nil
	},
}

// taskJSON converts a task into the --json output shape.
func taskJSON(task *domain.Task) map[string]interface{} {
	payload := map[string]interface{}{
		"title":        task.Title,
		"description":  task.Description,
		"task_type":    string(task.Type),
		"difficulty":   string(task.Difficulty),
		"category":     task.Category,
		"completed":    task.Completed,
		"xp_value":     task.XPValue,
		"created_date": task.CreatedDate.String(),
	}
	if task.CompletedDate != nil {
		payload["completed_date"] = task.CompletedDate.String()
	} else {
		payload["completed_date"] = nil
	}
	return payload
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed tasks")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category name")
}
