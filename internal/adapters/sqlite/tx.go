package sqlite

import (
	"database/sql"
	"strings"

	"codeplan/internal/domain"
)

// indexTx groups the writes of one sync
type indexTx struct {
	tx *sql.Tx
}

// beginTx starts a new transaction
func (idx *Index) beginTx() (*indexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

// Clear removes every indexed item
func (t *indexTx) Clear() error {
	_, err := t.tx.Exec(`DELETE FROM items`)
	return err
}

// UpsertEntry inserts or updates an item row
func (t *indexTx) UpsertEntry(e *domain.IndexEntry) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO items (path, id, title, type, status, priority, labels, body, archived, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Path, e.ID, e.Title, string(e.Type), e.Status, string(e.Priority),
		strings.Join(e.Labels, ","), e.Body, e.Archived, e.Mtime)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
