package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pedromcvaz/udacity-data-engineer/internal/schema"
	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
)

// sqlType maps a schema column kind to its SQLite type. Timestamps are stored
// as TEXT; database/sql renders time.Time values in a sortable layout.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt:
		return "INTEGER"
	case schema.KindReal:
		return "REAL"
	case schema.KindTimestamp:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL renders a CREATE TABLE IF NOT EXISTS statement for one
// table definition in SQLite dialect.
func BuildCreateTableSQL(t schema.Table) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: table %s has no columns", t.Name)
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := c.Name + " " + sqlType(c.Kind)
		if !c.Nullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		t.Name,
		strings.Join(cols, ",\n  "),
	), nil
}

// ensureSchema creates every target table. Registered as the "sqlite" DDL
// bootstrapper.
func ensureSchema(ctx context.Context, repo storage.Repository) error {
	for _, t := range schema.Tables() {
		sql, err := BuildCreateTableSQL(t)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, sql); err != nil {
			return fmt.Errorf("sqlite ddl: create %s: %w", t.Name, err)
		}
	}
	return nil
}
