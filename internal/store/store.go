// Package store handles SQLite persistence for cached frequency tables.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/xorcrack/internal/frequency"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for frequency-table caching. Building a table
// from a large corpus means scanning the whole file; the cache keys the
// result by corpus checksum and charset so repeat analyses skip the scan.
type Store struct {
	db *sql.DB
}

// TableKey identifies a cached table.
type TableKey struct {
	Checksum   string
	Charset    string
	CorpusPath string
}

// TableInfo summarizes a cached table for listing.
type TableInfo struct {
	Checksum   string
	Charset    string
	CorpusPath string
	CreatedAt  time.Time
	Entries    int
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS freq_tables (
			id INTEGER PRIMARY KEY,
			corpus_checksum TEXT NOT NULL,
			charset TEXT NOT NULL,
			corpus_path TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE (corpus_checksum, charset)
		);`,
		`CREATE TABLE IF NOT EXISTS freq_entries (
			table_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			freq REAL NOT NULL,
			PRIMARY KEY (table_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_freq_tables_checksum ON freq_tables(corpus_checksum);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveTable stores a frequency table, replacing any previous table for
// the same corpus checksum and charset.
func (s *Store) SaveTable(ctx context.Context, key TableKey, table frequency.Table) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM freq_entries WHERE table_id IN
			(SELECT id FROM freq_tables WHERE corpus_checksum = ? AND charset = ?)`,
		key.Checksum, key.Charset); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM freq_tables WHERE corpus_checksum = ? AND charset = ?`,
		key.Checksum, key.Charset); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO freq_tables (corpus_checksum, charset, corpus_path, created_at)
		 VALUES (?, ?, ?, ?)`,
		key.Checksum, key.Charset, key.CorpusPath, time.Now().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if len(table) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO freq_entries (table_id, char, freq) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for r, f := range table {
			if _, err = stmt.ExecContext(ctx, id, string(r), f); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// GetTable loads the cached table for a corpus checksum and charset. The
// second return is false on a cache miss.
func (s *Store) GetTable(ctx context.Context, checksum, charset string) (frequency.Table, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM freq_tables WHERE corpus_checksum = ? AND charset = ?`,
		checksum, charset).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT char, freq FROM freq_entries WHERE table_id = ?`, id)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	table := frequency.Table{}
	for rows.Next() {
		var char string
		var freq float64
		if err := rows.Scan(&char, &freq); err != nil {
			return nil, false, err
		}
		for _, r := range char {
			table[r] = freq
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return table, true, nil
}

// ListTables returns summaries of all cached tables, newest first.
func (s *Store) ListTables(ctx context.Context) ([]TableInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.corpus_checksum, t.charset, t.corpus_path, t.created_at, COUNT(e.char)
		 FROM freq_tables t
		 LEFT JOIN freq_entries e ON e.table_id = t.id
		 GROUP BY t.id
		 ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var infos []TableInfo
	for rows.Next() {
		var info TableInfo
		var createdAt string
		if err := rows.Scan(&info.Checksum, &info.Charset, &info.CorpusPath, &createdAt, &info.Entries); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		info.CreatedAt = parsed
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}
