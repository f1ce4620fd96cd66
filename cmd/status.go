package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/services"
	"github.com/edaskel/questlog/internal/ui"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your level, XP and streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		progress, err := checklist.Progress(ctx)
		if err != nil {
			return fmt.Errorf("failed to get progress: %w", err)
		}
		user := progress.User

		pending, err := checklist.ListTasks(ctx, services.ListTasksRequest{})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if jsonOutput {
			payload := map[string]interface{}{
				"total_xp":       user.TotalXP,
				"current_level":  user.CurrentLevel,
				"next_level_at":  progress.NextLevelAt,
				"xp_to_next":     progress.XPToNext,
				"current_streak": user.CurrentStreak,
				"longest_streak": user.LongestStreak,
				"pending_tasks":  len(pending),
			}
			if user.LastActivityDate != nil {
				payload["last_activity_date"] = user.LastActivityDate.String()
			} else {
				payload["last_activity_date"] = nil
			}
			return printJSON(payload)
		}

		floor := domain.XPRequiredForLevel(user.CurrentLevel)
		span := progress.NextLevelAt - floor
		ratio := 1.0
		if span > 0 {
			ratio = float64(user.TotalXP-floor) / float64(span)
		}

		fmt.Println(ui.Heading(ui.IconApp, "Questlog"))
		fmt.Println()
		fmt.Println(ui.LabelValue("Level", ui.Gold.Render(fmt.Sprintf("%s %d", ui.IconTrophy, user.CurrentLevel))))
		fmt.Printf("%s %s %d / %d XP\n", ui.Key.Render("XP:"), ui.ProgressBar(ratio, 24), user.TotalXP, progress.NextLevelAt)
		fmt.Println(ui.LabelValue("To next level", fmt.Sprintf("%d XP", progress.XPToNext)))
		fmt.Println()
		fmt.Println(ui.LabelValue("Streak", fmt.Sprintf("%s %d days (best %d)", ui.IconStreak, user.CurrentStreak, user.LongestStreak)))
		if user.LastActivityDate != nil {
			fmt.Println(ui.LabelValue("Last activity", user.LastActivityDate.String()))
		}
		fmt.Println()
		fmt.Println(ui.LabelValue("Pending tasks", len(pending)))
		return nil
	},
}
