package sqlite

import (
	"fmt"
	"time"

	"codeplan/internal/domain"
)

// Sync replaces every indexed row with entries in one transaction.
// Entries without a path or id are skipped.
func (idx *Index) Sync(entries []domain.IndexEntry) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	tx, err := idx.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}

	if err := tx.Clear(); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to clear index: %w", err)
	}

	for i := range entries {
		stats.FilesScanned++
		if entries[i].Path == "" || entries[i].ID == "" {
			stats.Skipped++
			continue
		}
		if err := tx.UpsertEntry(&entries[i]); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to index %s: %w", entries[i].Path, err)
		}
		stats.EntriesAdded++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}

	// Update last sync time
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}
