package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codeplan/internal/application/commands"
)

var archiveDone bool

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive an item, or every done item",
	Long: `Move an item into .codeplan/archive/YYYY-MM/. Archived items no longer
show up in listings and can be brought back with restore.

Examples:
  codeplan-cli archive FEAT-001    # Archive single item
  codeplan-cli archive --done      # Archive every item in the last status`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}
		ctx := context.Background()
		out := cmd.OutOrStdout()

		switch {
		case archiveDone && len(args) == 0:
			result, err := commands.NewArchiveDoneCommand(GetRepo(), dir).Execute(ctx)
			if err != nil {
				return err
			}
			for _, a := range result.Archived {
				fmt.Fprintln(out, "  "+a.Message)
			}
			for _, e := range result.Errors {
				fmt.Fprintln(out, "  Warning: "+e.Error())
			}
			fmt.Fprintln(out, result.Message)
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d item(s) could not be archived", len(result.Errors))
			}

		case !archiveDone && len(args) == 1:
			result, err := commands.NewArchiveItemCommand(GetRepo(), dir, args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result.Message)

		default:
			return errors.New("give an item ID or --done")
		}

		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore an archived item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		result, err := commands.NewRestoreItemCommand(GetRepo(), dir, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	archiveCmd.Flags().BoolVar(&archiveDone, "done", false, "archive every item in the last workflow status")
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(restoreCmd)
}
