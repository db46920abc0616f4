// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql and the modernc driver. It exists for local runs and tests
// where a Postgres server is not available; the loader semantics (one insert
// per row, per-file transaction committed by the driver) are identical.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
	storage.RegisterDDL("sqlite", ensureSchema)
}

const songLookupSQL = `SELECT s.song_id, a.artist_id
FROM songs s
JOIN artists a ON s.artist_id = a.artist_id
WHERE s.title = ? AND a.name = ? AND s.duration = ?`

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB

	// tx spans all statements of the current input file; nil between Commit
	// and the next Insert/LookupSong.
	tx *sql.Tx

	insertSQL map[string]string
}

// NewRepository opens a SQLite database. DSN is a file path or file: URI,
// e.g. "sparkify.db" or "file:sparkify.db?cache=shared".
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// One logical connection: the lazy transaction pins a single conn and the
	// loader is single-threaded anyway.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db, insertSQL: map[string]string{}}, nil
}

func (r *Repository) begin(ctx context.Context) (*sql.Tx, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin: %w", err)
	}
	r.tx = tx
	return tx, nil
}

// Insert executes one parametrized insert of row into table.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, row []any) error {
	if len(row) != len(columns) {
		return fmt.Errorf("sqlite: insert %s: row length %d != columns length %d", table, len(row), len(columns))
	}
	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, r.insertStatement(table, columns), row...); err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", table, err)
	}
	return nil
}

// LookupSong implements the catalog lookup. ok is false when no song/artist
// pair matched.
func (r *Repository) LookupSong(ctx context.Context, title, artist string, duration float64) (string, string, bool, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return "", "", false, err
	}
	var songID, artistID string
	err = tx.QueryRowContext(ctx, songLookupSQL, title, artist, duration).Scan(&songID, &artistID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("sqlite: song lookup: %w", err)
	}
	return songID, artistID, true, nil
}

// Exec runs an arbitrary statement (DDL).
func (r *Repository) Exec(ctx context.Context, query string) error {
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// Commit commits the current transaction, if any.
func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	err := r.tx.Commit()
	r.tx = nil
	if err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Close closes the database. An uncommitted transaction is rolled back by the
// driver as the connection shuts down.
func (r *Repository) Close(ctx context.Context) error {
	if r.tx != nil {
		_ = r.tx.Rollback()
		r.tx = nil
	}
	return r.db.Close()
}

func (r *Repository) insertStatement(table string, columns []string) string {
	if q, ok := r.insertSQL[table]; ok {
		return q
	}
	q := buildInsertSQL(table, columns)
	r.insertSQL[table] = q
	return q
}

// buildInsertSQL renders "INSERT INTO t (c1,c2) VALUES (?,?)". SQLite
// identifiers here come from the fixed schema, so no quoting is applied.
func buildInsertSQL(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}
