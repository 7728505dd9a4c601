package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"codeplan/internal/adapters/editor"
	"codeplan/internal/application"
	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	createType        string
	createPriority    string
	createStatus      string
	createLabels      []string
	createDescription string
	createAssignee    string
	createParent      string
	createPoints      int
	createSprint      int
	createDue         string
	createEdit        bool
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a backlog item",
	Long: `Create a backlog item with the next free ID for its type.

Examples:
  codeplan-cli create "Dark mode" --type feature --priority high
  codeplan-cli create "Crash on save" -t bug -l ios -l crash
  codeplan-cli create "Upgrade deps" -t chore --due 2025-03-01 --edit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		draft := domain.Draft{
			Title:       args[0],
			Type:        domain.ItemType(createType),
			Priority:    domain.Priority(createPriority),
			Status:      createStatus,
			Labels:      createLabels,
			Description: createDescription,
			Assignee:    createAssignee,
			Parent:      createParent,
		}
		if cmd.Flags().Changed("points") {
			draft.Points = domain.IntPtr(createPoints)
		}
		if cmd.Flags().Changed("sprint") {
			draft.Sprint = domain.IntPtr(createSprint)
		}
		if createDue != "" {
			due, err := parseDate("due", createDue)
			if err != nil {
				return err
			}
			draft.Due = due
		}

		result, err := commands.NewCreateItemCommand(GetRepo(), dir, draft).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)

		if createEdit {
			return editor.NewOpener(editor.WithEditor(settings.Editor)).
				OpenFile(filepath.Join(dir, result.Item.Filename()))
		}
		return nil
	},
}

// parseDate reads a YYYY-MM-DD flag value; an empty value is the zero time
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &application.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("expected a date like 2025-01-31, got: %s", value),
		}
	}
	return t, nil
}

func init() {
	createCmd.Flags().StringVarP(&createType, "type", "t", "", "item type (feature, bug, task, chore, spike)")
	createCmd.Flags().StringVarP(&createPriority, "priority", "p", "", "priority (low, medium, high, critical)")
	createCmd.Flags().StringVarP(&createStatus, "status", "s", "", "initial status (default: first workflow status)")
	createCmd.Flags().StringSliceVarP(&createLabels, "label", "l", nil, "label, repeatable")
	createCmd.Flags().StringVarP(&createDescription, "description", "m", "", "description")
	createCmd.Flags().StringVar(&createAssignee, "assignee", "", "assignee")
	createCmd.Flags().StringVar(&createParent, "parent", "", "parent item ID")
	createCmd.Flags().IntVar(&createPoints, "points", 0, "story points")
	createCmd.Flags().IntVar(&createSprint, "sprint", 0, "sprint number")
	createCmd.Flags().StringVar(&createDue, "due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().BoolVarP(&createEdit, "edit", "e", false, "open the new item in $EDITOR")
	rootCmd.AddCommand(createCmd)
}
