package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"codeplan/internal/adapters/editor"
	"codeplan/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Long: `Delete an active item's file.

Warning: This operation cannot be undone. Use archive to keep the item
out of listings without losing it.

Examples:
  codeplan-cli delete TASK-007`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		deleteCmd := commands.NewDeleteItemCommand(GetRepo(), dir, args[0])
		result, err := deleteCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Open an item in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		result, err := commands.NewGetItemCommand(GetRepo(), dir, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		if result.Archived {
			logger.Warn("editing an archived item", "id", result.Item.ID)
		}

		return editor.NewOpener(editor.WithEditor(settings.Editor)).
			OpenFile(filepath.Join(dir, filepath.FromSlash(result.Path)))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(editCmd)
}
