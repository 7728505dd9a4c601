package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codeplan/internal/application/commands"
)

var (
	statusNext bool
	statusPrev bool
)

var statusCmd = &cobra.Command{
	Use:   "status <id> [status]",
	Short: "Change an item's status",
	Long: `Move an item to another workflow status, or one step along the
workflow with --next or --prev.

Examples:
  codeplan-cli status FEAT-001 in-progress
  codeplan-cli status FEAT-001 --next`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}
		ctx := context.Background()
		out := cmd.OutOrStdout()

		if len(args) == 2 {
			if statusNext || statusPrev {
				return errors.New("give either a status or --next/--prev, not both")
			}
			result, err := commands.NewUpdateStatusCommand(GetRepo(), dir, args[0], args[1]).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result.Message)
			return nil
		}

		if statusNext == statusPrev {
			return errors.New("give a status, or exactly one of --next and --prev")
		}
		result, err := commands.NewShiftStatusCommand(GetRepo(), dir, args[0], statusNext).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result.Message)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusNext, "next", false, "advance to the next status")
	statusCmd.Flags().BoolVar(&statusPrev, "prev", false, "move back to the previous status")
	rootCmd.AddCommand(statusCmd)
}
