// Package cmd provides the CLI commands for the Questlog application.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edaskel/questlog/internal/adapters/notification"
	"github.com/edaskel/questlog/internal/adapters/storage"
	"github.com/edaskel/questlog/internal/adapters/tui"
	"github.com/edaskel/questlog/internal/config"
	"github.com/edaskel/questlog/internal/ports"
	"github.com/edaskel/questlog/internal/services"
	"github.com/edaskel/questlog/internal/ui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dataDir    string
	jsonOutput bool

	// Global dependencies
	store     ports.Store
	checklist *services.ChecklistService
	notifier  *notification.Notifier
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "questlog",
	Short: "Questlog - A gamified task tracker",
	Long: `Questlog is a command-line task tracker that turns your to-do list
into a quest log: completing tasks earns XP, levels you up, and keeps
a daily streak alive.

Run "questlog" with no arguments to open the interactive board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Show welcome screen on first run
		if appConfig.FirstRun {
			printWelcome()
			appConfig.FirstRun = false
			_ = config.Save(appConfig)
			return nil
		}
		return tui.Run(checklist)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Path to the data directory (default: ~/.questlog/data)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Questlog\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(uncompleteCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	// Apply the configured theme before anything renders
	ui.Apply(appConfig.Theme)

	// Initialize notifier
	notifier = notification.New(&appConfig.Notifications)

	// Determine data directory: --data-dir flag > config
	dir := appConfig.Storage.DataDir
	if dataDir != "" {
		dir = dataDir
	}

	// Initialize storage
	store, err = storage.New(dir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize services
	checklist = services.NewChecklistService(store)
	checklist.SetNotifier(notifier)

	return nil
}

// welcomeText is the one-time orientation screen for a fresh install.
func welcomeText() string {
	return `
  Welcome to Questlog!

  Your to-do list is now a quest log: completing tasks earns XP,
  levels you up, and keeps a daily streak alive.

    questlog add "Water the plants"     Add a daily task (10 XP)
    questlog add -t quest -d hard ...   Add a hard quest (70 XP)
    questlog complete plants            Complete it and earn the XP
    questlog status                     See your level and streak
    questlog board                      Open the interactive board

  Run "questlog" again to go straight to the board.
`
}

// printWelcome shows the first-run orientation screen.
func printWelcome() {
	fmt.Println(welcomeText())
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

