package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

const schemaVersion = "2"

// Index implements ports.ItemIndex using SQLite. The database lives under
// $XDG_DATA_HOME and holds nothing that cannot be rebuilt from the item files.
type Index struct {
	db         *sql.DB
	backlogDir string
	dbPath     string
}

// Ensure Index implements ItemIndex
var _ ports.ItemIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given backlog folder
func (idx *Index) Open(backlogDir string) error {
	abs, err := filepath.Abs(backlogDir)
	if err != nil {
		return fmt.Errorf("failed to resolve backlog folder: %w", err)
	}
	idx.backlogDir = abs
	idx.dbPath = databasePath(abs)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	if idx.needsFullRebuild() {
		if _, err := db.Exec(`DROP TABLE IF EXISTS items`); err != nil {
			db.Close()
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS items (
			path TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT,
			status TEXT,
			priority TEXT,
			labels TEXT,
			body TEXT,
			archived INTEGER NOT NULL,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_items_id ON items(id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Update metadata
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file backing the index
func (idx *Index) Path() string {
	return idx.dbPath
}

// needsFullRebuild returns true if the stored rows were written by another schema
// or for another backlog folder
func (idx *Index) needsFullRebuild() bool {
	var version, dirHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'backlog_path_hash'").Scan(&dirHash)

	return version != schemaVersion || dirHash != hashBacklogPath(idx.backlogDir)
}

// databasePath returns the path for the SQLite database
func databasePath(backlogDir string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "codeplan", hashBacklogPath(backlogDir)+".db")
}

// hashBacklogPath returns a short hash of the backlog path
func hashBacklogPath(backlogDir string) string {
	h := sha256.Sum256([]byte(backlogDir))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and backlog path hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('backlog_path_hash', ?);
	`, schemaVersion, hashBacklogPath(idx.backlogDir))
	return err
}

// Count returns the number of indexed items
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

// Search returns items whose id, title, labels or body contain the query
// characters in order. Active items come before archived ones.
// A limit of zero or less returns every match.
func (idx *Index) Search(query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}

	pattern := subsequencePattern(query)
	rows, err := idx.db.Query(`
		SELECT path, id, title, status, archived, labels, body
		FROM items
		WHERE id LIKE ? ESCAPE '\'
			OR title LIKE ? ESCAPE '\'
			OR labels LIKE ? ESCAPE '\'
			OR body LIKE ? ESCAPE '\'
		ORDER BY archived, id
		LIMIT ?
	`, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		var labels, body sql.NullString
		if err := rows.Scan(&r.Path, &r.ID, &r.Title, &r.Status, &r.Archived, &labels, &body); err != nil {
			return nil, err
		}
		r.MatchedText = matchedText(query, labels.String, body.String)
		results = append(results, r)
	}

	return results, rows.Err()
}

// subsequencePattern builds a LIKE pattern matching the query's characters
// in order with anything between them: "dm" -> "%d%m%"
func subsequencePattern(query string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range query {
		switch r {
		case '%', '_', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		b.WriteByte('%')
	}
	return b.String()
}

// matchedText returns the label or body line containing query, or ""
func matchedText(query, labels, body string) string {
	q := strings.ToLower(query)
	for _, label := range strings.Split(labels, ",") {
		if label != "" && strings.Contains(strings.ToLower(label), q) {
			return label
		}
	}
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(strings.ToLower(line), q) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
