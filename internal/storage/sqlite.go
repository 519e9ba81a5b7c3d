package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hweilin/vocabook/internal/vocab"
)

const sqliteFileName = "vocabulary_book.db"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS vocabulary (
	id TEXT PRIMARY KEY,
	word TEXT NOT NULL,
	phonetic TEXT NOT NULL DEFAULT '',
	translation TEXT NOT NULL DEFAULT '',
	part_of_speech TEXT NOT NULL DEFAULT '',
	level INTEGER NOT NULL,
	sources TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vocabulary_word ON vocabulary(word);
CREATE INDEX IF NOT EXISTS idx_vocabulary_level ON vocabulary(level)`

// SQLiteEngine is the indexed, transactional record store: one row per
// entry keyed by id, with secondary indexes on word and level.
type SQLiteEngine struct {
	path string
	db   *sql.DB
}

// NewSQLiteEngine creates a SQLite engine storing its database under dir.
func NewSQLiteEngine(dir string) *SQLiteEngine {
	return &SQLiteEngine{path: filepath.Join(dir, sqliteFileName)}
}

// Kind returns EngineSQLite.
func (e *SQLiteEngine) Kind() EngineKind { return EngineSQLite }

// Open connects to the database and creates the schema if it is not
// already present. A host that cannot open the database reports
// ErrUnavailable.
func (e *SQLiteEngine) Open() error {
	if e.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite3", e.path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrUnavailable, e.path, err)
	}

	for _, stmt := range strings.Split(sqliteSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("%w: create schema: %v", ErrUnavailable, err)
		}
	}

	e.db = db
	return nil
}

// LoadAll returns every stored entry. Query or decode problems are
// reported as an empty book.
func (e *SQLiteEngine) LoadAll() []vocab.Entry {
	if e.db == nil {
		return nil
	}

	rows, err := e.db.Query(`SELECT id, word, phonetic, translation, part_of_speech,
		level, sources, created_at, updated_at FROM vocabulary`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: query vocabulary: %v\n", err)
		return nil
	}
	defer rows.Close()

	var entries []vocab.Entry
	for rows.Next() {
		var entry vocab.Entry
		var sources, createdAt, updatedAt string
		if err := rows.Scan(&entry.ID, &entry.Word, &entry.Phonetic, &entry.Translation,
			&entry.PartOfSpeech, &entry.Level, &sources, &createdAt, &updatedAt); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: scan vocabulary row: %v\n", err)
			return nil
		}
		if err := json.Unmarshal([]byte(sources), &entry.Sources); err != nil {
			entry.Sources = nil
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: read vocabulary rows: %v\n", err)
		return nil
	}
	return entries
}

// ReplaceAll clears the table and inserts the given set inside a single
// transaction, so a failure partway through leaves the previous contents
// intact.
func (e *SQLiteEngine) ReplaceAll(entries []vocab.Entry) error {
	if e.db == nil {
		return fmt.Errorf("%w: engine not opened", ErrPersist)
	}

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ErrPersist, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vocabulary`); err != nil {
		return fmt.Errorf("%w: clear vocabulary: %v", ErrPersist, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO vocabulary
		(id, word, phonetic, translation, part_of_speech, level, sources, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %v", ErrPersist, err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		sources, err := json.Marshal(entry.Sources)
		if err != nil {
			return fmt.Errorf("%w: encode sources for %q: %v", ErrPersist, entry.Word, err)
		}
		_, err = stmt.Exec(entry.ID, entry.Word, entry.Phonetic, entry.Translation,
			entry.PartOfSpeech, entry.Level, string(sources),
			entry.CreatedAt.Format(time.RFC3339Nano), entry.UpdatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("%w: insert %q: %v", ErrPersist, entry.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersist, err)
	}
	return nil
}

// Clear empties the vocabulary table.
func (e *SQLiteEngine) Clear() error {
	if e.db == nil {
		return nil
	}
	_, err := e.db.Exec(`DELETE FROM vocabulary`)
	return err
}

// Close closes the database connection.
func (e *SQLiteEngine) Close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}
