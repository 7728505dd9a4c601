package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// SearchResult wraps domain.SearchResult with a relevance score
type SearchResult struct {
	domain.SearchResult
	Score int
}

// SearchCommand searches active and archived items with fuzzy ranking.
// The index is rebuilt from the item files before every query.
type SearchCommand struct {
	repo  ports.BacklogStore
	index ports.ItemIndex
	Dir   string
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(repo ports.BacklogStore, index ports.ItemIndex, dir, query string) *SearchCommand {
	return &SearchCommand{
		repo:  repo,
		index: index,
		Dir:   dir,
		Query: query,
		Limit: 50,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	var entries []domain.IndexEntry
	for _, load := range []func(string) (*ports.LoadResult, error){c.repo.LoadActive, c.repo.LoadArchived} {
		loaded, err := load(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to search: %w", err)
		}
		for _, item := range loaded.Items {
			entries = append(entries, domain.NewIndexEntry(loaded.Paths[item.ID], item, indexMtime(item)))
		}
	}

	if _, err := c.index.Sync(entries); err != nil {
		return nil, fmt.Errorf("failed to sync index: %w", err)
	}

	results, err := c.index.Search(c.Query, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	return FuzzySort(results, c.Query), nil
}

func indexMtime(item domain.Item) int64 {
	if !item.Updated.IsZero() {
		return item.Updated.Unix()
	}
	return item.Created.Unix()
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isSeparator(target[i-1]) {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '-' || b == '_' || b == '/'
}

// FuzzySort sorts search results by relevance to the query.
// Archived matches rank below active ones with the same score.
func FuzzySort(results []domain.SearchResult, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(results))

	for _, r := range results {
		best := max(
			FuzzyScore(r.ID, query),
			FuzzyScore(r.Title, query),
			FuzzyScore(r.MatchedText, query),
		)

		if best > 0 {
			scored = append(scored, SearchResult{
				SearchResult: r,
				Score:        best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return !scored[i].Archived && scored[j].Archived
	})

	return scored
}
