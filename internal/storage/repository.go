// Package storage contains the storage-agnostic repository contract and a
// registry of concrete backends.
//
// The loader model is deliberately row-at-a-time: one parametrized INSERT per
// row, all statements of one input file sharing a transaction that the batch
// driver commits after the file completes. Backends own their SQL dialect
// (placeholder style, identifier quoting, type names); callers only see
// tables, ordered columns, and value tuples.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation: "postgres" or "sqlite".
	Kind string

	// DSN is the backend connection string. For postgres this is a pgx
	// keyword/value or URL DSN; for sqlite a file path or file: URI.
	DSN string
}

// Repository is the contract every storage backend implements.
//
// Insert and LookupSong run inside the repository's current transaction; the
// first such call after a Commit (or after opening) begins a new one. Commit
// commits and clears the current transaction. There is no rollback operation:
// a failed statement leaves the transaction in whatever state the backend put
// it in, and the error propagates to the caller.
type Repository interface {
	// Insert executes one parametrized insert of row into table. Columns
	// gives the target column order; len(row) must equal len(columns).
	Insert(ctx context.Context, table string, columns []string, row []any) error

	// LookupSong resolves a playback event against the song/artist catalog
	// by exact title, artist name, and duration match. ok is false when no
	// row matched.
	LookupSong(ctx context.Context, title, artist string, duration float64) (songID, artistID string, ok bool, err error)

	// Exec runs an arbitrary statement outside the insert path (DDL).
	Exec(ctx context.Context, sql string) error

	// Commit commits the current transaction, if any.
	Commit(ctx context.Context) error

	// Close releases the underlying connection. An open transaction is
	// discarded, matching the close-without-commit behavior of the loader.
	Close(ctx context.Context) error
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a storage kind. Backend
// packages call it from init; tests use it to install fakes.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
