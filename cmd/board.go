package cmd

import (
	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/adapters/tui"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open the fullscreen task board. Move with j/k, toggle completion
with enter, add a task with "a".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(checklist)
	},
}
