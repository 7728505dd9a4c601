package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
)

var (
	listStatus   string
	listType     string
	listPriority string
	listLabel    string
	listLimit    int
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List backlog items",
	Long: `List active backlog items, highest priority first.

Examples:
  codeplan-cli list
  codeplan-cli list --status in-progress
  codeplan-cli list --type bug --priority critical
  codeplan-cli list --label ui --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		filter := commands.ListFilter{
			Status:   listStatus,
			Type:     domain.ItemType(listType),
			Priority: domain.Priority(listPriority),
			Label:    listLabel,
		}
		limit := listLimit
		if listAll {
			limit = -1
		}

		result, err := commands.NewListItemsCommand(GetRepo(), dir, filter, limit).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Items) == 0 {
			fmt.Fprintln(out, "No items found")
			return nil
		}
		printItems(out, result.Items)
		fmt.Fprintln(out, result.Message)
		return nil
	},
}

var archivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		result, err := commands.NewLoadArchivedCommand(GetRepo(), dir).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Items) == 0 {
			fmt.Fprintln(out, "No archived items")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, item := range result.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, result.Paths[item.ID], item.Title)
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one item",
	Long: `Show an item's metadata, description and checklist.
Archived items are found too.

Examples:
  codeplan-cli show FEAT-001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		result, err := commands.NewGetItemCommand(GetRepo(), dir, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		printItem(cmd.OutOrStdout(), result)
		return nil
	},
}

func printItems(out io.Writer, items []domain.Item) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tPRIORITY\tTITLE")
	for _, item := range items {
		title := item.Title
		if len(item.Labels) > 0 {
			title += " [" + strings.Join(item.Labels, ", ") + "]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Type, item.Status, item.Priority, title)
	}
	w.Flush()
}

func printItem(out io.Writer, result *commands.GetItemResult) {
	item := result.Item

	fmt.Fprintf(out, "%s  %s\n\n", item.ID, item.Title)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Type:\t%s\n", item.Type)
	fmt.Fprintf(w, "Status:\t%s\n", item.Status)
	fmt.Fprintf(w, "Priority:\t%s\n", item.Priority)
	if len(item.Labels) > 0 {
		fmt.Fprintf(w, "Labels:\t%s\n", strings.Join(item.Labels, ", "))
	}
	if item.Assignee != "" {
		fmt.Fprintf(w, "Assignee:\t%s\n", item.Assignee)
	}
	if item.Sprint != nil {
		fmt.Fprintf(w, "Sprint:\t%d\n", *item.Sprint)
	}
	if item.Points != nil {
		fmt.Fprintf(w, "Points:\t%d\n", *item.Points)
	}
	if item.Parent != "" {
		fmt.Fprintf(w, "Parent:\t%s\n", item.Parent)
	}
	fmt.Fprintf(w, "Created:\t%s\n", item.Created.Format(dateLayout))
	if !item.Updated.IsZero() {
		fmt.Fprintf(w, "Updated:\t%s\n", item.Updated.Format(dateLayout))
	}
	if !item.Due.IsZero() {
		fmt.Fprintf(w, "Due:\t%s\n", item.Due.Format(dateLayout))
	}
	path := result.Path
	if result.Archived {
		path += " (archived)"
	}
	fmt.Fprintf(w, "File:\t%s\n", path)
	w.Flush()

	if item.Description != "" {
		fmt.Fprintf(out, "\n%s\n", item.Description)
	}
	if len(item.Tasks) > 0 {
		done, total := item.Progress()
		fmt.Fprintf(out, "\nTasks (%d/%d):\n", done, total)
		for _, t := range item.Tasks {
			mark := " "
			if t.Done {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %s\n", mark, t.Text)
		}
	}
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by type (feature, bug, task, chore, spike)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (low, medium, high, critical)")
	listCmd.Flags().StringVarP(&listLabel, "label", "l", "", "filter by label")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", commands.DefaultListLimit, "maximum number of items")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show every matching item")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(archivedCmd)
	rootCmd.AddCommand(showCmd)
}
