package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/ui"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the data files",
	Long:  `Copy the data files into a dated backup directory next to them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dir, err := checklist.Backup(ctx)
		if err != nil {
			return fmt.Errorf("failed to backup data: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{"backup_dir": dir})
		}

		fmt.Printf("%s Backup written to %s\n", ui.IconBox, dir)
		return nil
	},
}
