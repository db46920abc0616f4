// Package postgres implements a Postgres storage.Repository using pgx v5.
//
// It holds exactly one connection (pgx.Conn, not a pool): the loader is
// single-threaded and the per-file commit discipline maps directly onto one
// connection's transaction. Inserts are plain parametrized statements, one
// per row, with no ON CONFLICT clause.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
	storage.RegisterDDL("postgres", ensureSchema)
}

// songLookupSQL resolves a playback event against the catalog by exact
// title, artist name, and duration match.
const songLookupSQL = `SELECT s.song_id, a.artist_id
FROM songs s
JOIN artists a ON s.artist_id = a.artist_id
WHERE s.title = $1 AND a.name = $2 AND s.duration = $3`

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	conn *pgx.Conn

	// tx is the transaction shared by all statements of the current input
	// file; nil between Commit and the next Insert/LookupSong.
	tx pgx.Tx

	// insertSQL caches generated insert statements per table.
	insertSQL map[string]string
}

// NewRepository connects to Postgres with the given DSN (pgx keyword/value or
// URL form) and returns a Repository.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return &Repository{conn: conn, insertSQL: map[string]string{}}, nil
}

// begin returns the current transaction, starting one if needed.
func (r *Repository) begin(ctx context.Context) (pgx.Tx, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin: %w", err)
	}
	r.tx = tx
	return tx, nil
}

// Insert executes one parametrized insert of row into table.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, row []any) error {
	if len(row) != len(columns) {
		return fmt.Errorf("postgres: insert %s: row length %d != columns length %d", table, len(row), len(columns))
	}
	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, r.insertStatement(table, columns), row...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return fmt.Errorf("postgres: insert %s: %s (%s)", table, pgErr.Detail, pgErr.SQLState())
		}
		return fmt.Errorf("postgres: insert %s: %w", table, err)
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
	err = tx.QueryRow(ctx, songLookupSQL, title, artist, duration).Scan(&songID, &artistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("postgres: song lookup: %w", err)
	}
	return songID, artistID, true, nil
}

// Exec runs an arbitrary statement (DDL) outside the insert transaction.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if _, err := r.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// Commit commits the current transaction, if any.
func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	err := r.tx.Commit(ctx)
	r.tx = nil
	if err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Close closes the connection. An uncommitted transaction is discarded.
func (r *Repository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

// insertStatement returns the cached insert SQL for table, generating it on
// first use.
func (r *Repository) insertStatement(table string, columns []string) string {
	if sql, ok := r.insertSQL[table]; ok {
		return sql
	}
	sql := buildInsertSQL(table, columns)
	r.insertSQL[table] = sql
	return sql
}

// buildInsertSQL renders "INSERT INTO t (c1,c2) VALUES ($1,$2)" with quoted
// identifiers and positional placeholders.
func buildInsertSQL(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pgFQN(table),
		strings.Join(mapIdent(columns), ", "),
		strings.Join(placeholders, ", "),
	)
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name like "public.songs" to
// "public"."songs". If no dot is present, returns a single quoted ident.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// mapIdent maps a list of column names to their quoted forms.
func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pgIdent(c)
	}
	return out
}
