package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/ui"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete [title]",
	Short: "Complete a task and earn XP",
	Long: `Mark a task as completed. The title is fuzzy matched against
pending tasks, so a fragment is enough.

Completing a task grants its XP value and advances the daily streak.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		result, err := checklist.CompleteTask(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"task":           taskJSON(result.Task),
				"xp_earned":      result.XPEarned,
				"total_xp":       result.User.TotalXP,
				"current_level":  result.User.CurrentLevel,
				"leveled_up":     result.LeveledUp,
				"current_streak": result.User.CurrentStreak,
				"streak_record":  result.StreakRecord,
			})
		}

		fmt.Printf("%s %s  %s\n", ui.IconDone, result.Task.Title,
			ui.Good.Render(fmt.Sprintf("%s+%d XP", ui.IconBolt, result.XPEarned)))
		if result.LeveledUp {
			fmt.Printf("%s %s\n", ui.IconTrophy,
				ui.Gold.Render(fmt.Sprintf("Level up! You are now level %d", result.User.CurrentLevel)))
		}
		if result.StreakRecord {
			fmt.Printf("%s %s\n", ui.IconStreak,
				ui.Warn.Render(fmt.Sprintf("New streak record: %d days", result.User.LongestStreak)))
		} else if result.User.CurrentStreak > 1 {
			fmt.Printf("%s %d day streak\n", ui.IconStreak, result.User.CurrentStreak)
		}
		return nil
	},
}
