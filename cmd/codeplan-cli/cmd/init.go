package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codeplan/internal/adapters/claudecli"
	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/application/commands"
)

var (
	initName    string
	initSkipMCP bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise Codeplan in a project",
	Long: `Create the .codeplan folder with a default config.yaml and README.md,
add agent instructions to CLAUDE.md, enable project tool servers in
.claude/settings.json and register the codeplan tool server with the
agent CLI.

Running init again leaves existing files alone.

Examples:
  codeplan-cli init
  codeplan-cli init --name "My App" --skip-mcp
  codeplan-cli init -d ~/src/my-app`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := settings.Dir
		if root == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root = cwd
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return err
		}

		name := initName
		if name == "" {
			name = filepath.Base(root)
		}

		initCmd := commands.NewInitProjectCommand(filesystem.OSFS{}, claudecli.NewRegistrar(), root, name)
		initCmd.SkipMCP = initSkipMCP
		result, err := initCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, step := range result.Steps {
			fmt.Fprintln(out, "  "+step)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(out, "  Warning: "+warning)
		}
		fmt.Fprintln(out, result.Message)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "project name (default: folder name)")
	initCmd.Flags().BoolVar(&initSkipMCP, "skip-mcp", false, "do not register the tool server with the agent CLI")
	rootCmd.AddCommand(initCmd)
}
