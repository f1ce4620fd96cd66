package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/services"
	"github.com/edaskel/questlog/internal/ui"
)

var (
	addType        string
	addDifficulty  string
	addCategory    string
	addDescription string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to the quest log.

Daily tasks earn base XP; quests earn double. Difficulty scales the
base value: easy 10, medium 20, hard 35.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		title := strings.Join(args, " ")

		taskType, err := domain.ParseTaskType(addType)
		if err != nil {
			return err
		}
		difficulty, err := domain.ParseDifficulty(addDifficulty)
		if err != nil {
			return err
		}

		task, err := checklist.AddTask(ctx, services.AddTaskRequest{
			Title:       title,
			Description: addDescription,
			Type:        taskType,
			Difficulty:  difficulty,
			Category:    addCategory,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"title":        task.Title,
				"description":  task.Description,
				"task_type":    string(task.Type),
				"difficulty":   string(task.Difficulty),
				"category":     task.Category,
				"xp_value":     task.XPValue,
				"created_date": task.CreatedDate.String(),
			})
		}

		fmt.Printf("%s Task added: %s (%s/%s, %s %d XP)\n",
			ui.IconPlus, task.Title, task.Type, task.Difficulty, ui.IconBolt, task.XPValue)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "daily", "Task type: daily or quest")
	addCmd.Flags().StringVarP(&addDifficulty, "difficulty", "d", "easy", "Difficulty: easy, medium, or hard")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "personal", "Category name")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Optional task description")
}
