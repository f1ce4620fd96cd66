package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/ui"
)

var (
	categoryEmoji string
	categoryColor string
)

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List task categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		categories, err := checklist.Categories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		if jsonOutput {
			payload := make([]map[string]interface{}, 0, len(categories))
			for _, c := range categories {
				payload = append(payload, map[string]interface{}{
					"name":         c.Name,
					"display_name": c.DisplayName,
					"emoji":        c.Emoji,
					"color":        c.Color,
				})
			}
			return printJSON(map[string]interface{}{"categories": payload})
		}

		for _, c := range categories {
			styled := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.DisplayName)
			fmt.Printf("%s %s  %s\n", c.Emoji, styled, ui.Muted.Render(c.Name))
		}
		return nil
	},
}

// categoriesAddCmd represents the categories add subcommand
var categoriesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category",
	Long: `Add a new category. Known names get their standard emoji and color;
unknown names fall back to a generic style unless --emoji or --color
are given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		category := domain.NewStyledCategory(args[0], "", categoryEmoji, categoryColor)
		if err := checklist.AddCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"name":         category.Name,
				"display_name": category.DisplayName,
				"emoji":        category.Emoji,
				"color":        category.Color,
			})
		}

		fmt.Printf("%s Category added: %s %s\n", ui.IconPlus, category.Emoji, category.DisplayName)
		return nil
	},
}

func init() {
	categoriesAddCmd.Flags().StringVar(&categoryEmoji, "emoji", "", "Emoji for the category")
	categoriesAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color for the category")
	categoriesCmd.AddCommand(categoriesAddCmd)
}
