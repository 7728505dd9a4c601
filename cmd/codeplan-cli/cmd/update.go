package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
)

var (
	updateTitle       string
	updateType        string
	updatePriority    string
	updateStatus      string
	updateLabels      []string
	updateDescription string
	updateAssignee    string
	updateParent      string
	updatePoints      int
	updateSprint      int
	updateDue         string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an item",
	Long: `Update the given fields of an item; other fields are left alone.
An empty --assignee, --parent or --due clears that field.

Examples:
  codeplan-cli update FEAT-001 --title "Dark theme" -p critical
  codeplan-cli update BUG-002 --label ios --label crash
  codeplan-cli update TASK-003 --due ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}

		result, err := commands.NewUpdateItemCommand(GetRepo(), dir, args[0], patch).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// patchFromFlags sets a patch field for every flag given on the command line
func patchFromFlags(cmd *cobra.Command) (domain.Patch, error) {
	var patch domain.Patch
	changed := cmd.Flags().Changed

	if changed("title") {
		patch.Title = &updateTitle
	}
	if changed("type") {
		t := domain.ItemType(updateType)
		patch.Type = &t
	}
	if changed("priority") {
		p := domain.Priority(updatePriority)
		patch.Priority = &p
	}
	if changed("status") {
		patch.Status = &updateStatus
	}
	if changed("label") {
		patch.Labels = &updateLabels
	}
	if changed("description") {
		patch.Description = &updateDescription
	}
	if changed("assignee") {
		patch.Assignee = &updateAssignee
	}
	if changed("parent") {
		patch.Parent = &updateParent
	}
	if changed("points") {
		patch.Points = domain.IntPtr(updatePoints)
	}
	if changed("sprint") {
		patch.Sprint = domain.IntPtr(updateSprint)
	}
	if changed("due") {
		due, err := parseDate("due", updateDue)
		if err != nil {
			return patch, err
		}
		patch.Due = &due
	}
	return patch, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateType, "type", "t", "", "item type")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "priority")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "status")
	updateCmd.Flags().StringSliceVarP(&updateLabels, "label", "l", nil, "labels, replacing the current ones")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "m", "", "description")
	updateCmd.Flags().StringVar(&updateAssignee, "assignee", "", "assignee")
	updateCmd.Flags().StringVar(&updateParent, "parent", "", "parent item ID")
	updateCmd.Flags().IntVar(&updatePoints, "points", 0, "story points")
	updateCmd.Flags().IntVar(&updateSprint, "sprint", 0, "sprint number")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "due date (YYYY-MM-DD)")
	rootCmd.AddCommand(updateCmd)
}
