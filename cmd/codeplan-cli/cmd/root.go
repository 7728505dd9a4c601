package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/config"
	"codeplan/internal/logging"
	"codeplan/internal/ports"
)

var (
	projectDir string
	logLevel   string
	settings   *config.Settings
	logger     *log.Logger
	repo       ports.BacklogStore
)

var rootCmd = &cobra.Command{
	Use:   "codeplan-cli",
	Short: "CLI for managing a Codeplan backlog",
	Long: `codeplan-cli manages the project backlog kept as markdown files in a
.codeplan folder at the project root.

It provides commands to initialise a project and to list, show, create,
update, archive, restore, search, and delete backlog items.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		settings = loaded
		if cmd.Flags().Changed("dir") {
			settings.Dir = projectDir
		}
		if cmd.Flags().Changed("log-level") {
			settings.LogLevel = logLevel
		}

		logger = logging.New(os.Stderr, settings.LogLevel)
		repo = filesystem.NewRepository(filesystem.WithLogger(logger))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "d", "", "project root (default: nearest folder with .codeplan)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// GetRepo returns the initialized repository
func GetRepo() ports.BacklogStore {
	return repo
}

// BacklogDir resolves the backlog folder the command works on
func BacklogDir() (string, error) {
	return settings.BacklogDir()
}
