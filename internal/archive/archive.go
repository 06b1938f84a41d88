// Package archive keeps an append-only record of finished accusations in
// SQLite so past verdicts can be reviewed with the history command.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ErrDisabled is returned by Open when no archive path is configured.
var ErrDisabled = errors.New("verdict archive disabled")

// Record is one archived accusation.
type Record struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	SessionID string    `db:"session_id"`
	Case      string    `db:"case_title"`
	Suspect   string    `db:"suspect"`
	Evidence  int       `db:"evidence"`
	Verdict   string    `db:"verdict"`
	Clues     []string  `db:"-"`
	CluesJSON string    `db:"clues"`
}

// Archive is a SQLite-backed verdict log.
type Archive struct {
	db *sqlx.DB
}

// Open connects to the archive at path, creating the schema if needed.
// ":memory:" gives a throwaway archive.
func Open(path string) (*Archive, error) {
	if path == "" {
		return nil, ErrDisabled
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to archive: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	a := &Archive{db: db}
	if err := a.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return a, nil
}

func (a *Archive) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS verdicts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		case_title TEXT NOT NULL,
		suspect TEXT NOT NULL,
		evidence INTEGER NOT NULL,
		verdict TEXT NOT NULL,
		clues TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_verdicts_created_at ON verdicts(created_at);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Save appends r. CreatedAt defaults to now.
func (a *Archive) Save(ctx context.Context, r Record) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	clues := r.Clues
	if clues == nil {
		clues = []string{}
	}
	cluesJSON, err := json.Marshal(clues)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal clues: %w", err)
	}
	r.CluesJSON = string(cluesJSON)

	res, err := a.db.NamedExecContext(ctx, `
		INSERT INTO verdicts (created_at, session_id, case_title, suspect, evidence, verdict, clues)
		VALUES (:created_at, :session_id, :case_title, :suspect, :evidence, :verdict, :clues)
	`, r)
	if err != nil {
		return 0, fmt.Errorf("failed to insert verdict: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit records, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Record, error) {
	var records []Record
	err := a.db.SelectContext(ctx, &records, `
		SELECT id, created_at, session_id, case_title, suspect, evidence, verdict, clues
		FROM verdicts
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	for i := range records {
		if err := json.Unmarshal([]byte(records[i].CluesJSON), &records[i].Clues); err != nil {
			return nil, fmt.Errorf("failed to decode clues of verdict %d: %w", records[i].ID, err)
		}
	}
	return records, nil
}

// Close closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}
