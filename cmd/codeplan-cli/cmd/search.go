package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codeplan/internal/adapters/sqlite"
	"codeplan/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search active and archived items",
	Long: `Search items by ID, title, labels or description.

Results are ranked by relevance using fuzzy matching. The search index is
a cache under $XDG_DATA_HOME/codeplan and is refreshed on every search.

Examples:
  codeplan-cli search "dark mode"
  codeplan-cli search BUG-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		index := sqlite.NewIndex()
		if err := index.Open(dir); err != nil {
			return err
		}
		defer index.Close()
		logger.Debug("search index", "path", index.Path())

		searchCmd := commands.NewSearchCommand(GetRepo(), index, dir, args[0])
		searchCmd.Limit = searchLimit
		results, err := searchCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			where := r.Status
			if r.Archived {
				where = "archived"
			}
			fmt.Fprintf(out, "[%s] %s %s\n", where, r.ID, r.Title)
			if r.MatchedText != "" && r.MatchedText != r.Title {
				fmt.Fprintf(out, "    %s\n", r.MatchedText)
			}
		}
		return nil
	},
}

var (
	contextKeywords  []string
	contextNoBacklog bool
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the work in flight",
	Long: `Show in-progress and in-review items plus high-priority items waiting
in the backlog, the same summary the agent tool server gives.

Examples:
  codeplan-cli context
  codeplan-cli context -k auth -k login --no-backlog`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := BacklogDir()
		if err != nil {
			return err
		}

		result, err := commands.NewGetContextCommand(GetRepo(), dir, !contextNoBacklog, contextKeywords).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "maximum number of results")
	contextCmd.Flags().StringSliceVarP(&contextKeywords, "keyword", "k", nil, "only items matching a keyword, repeatable")
	contextCmd.Flags().BoolVar(&contextNoBacklog, "no-backlog", false, "leave out high-priority backlog items")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(contextCmd)
}
