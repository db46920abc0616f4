package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pedromcvaz/udacity-data-engineer/internal/schema"
	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
)

// sqlType maps a schema column kind to its Postgres type.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt:
		return "INT"
	case schema.KindReal:
		return "DOUBLE PRECISION"
	case schema.KindTimestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL renders a deterministic CREATE TABLE IF NOT EXISTS
// statement for one table definition, with Postgres-quoted identifiers.
func BuildCreateTableSQL(t schema.Table) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: table %s has no columns", t.Name)
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(pgIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(sqlType(c.Kind))
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		pgFQN(t.Name),
		strings.Join(cols, ",\n  "),
	), nil
}

// ensureSchema creates every target table. Registered as the "postgres" DDL
// bootstrapper.
func ensureSchema(ctx context.Context, repo storage.Repository) error {
	for _, t := range schema.Tables() {
		sql, err := BuildCreateTableSQL(t)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, sql); err != nil {
			return fmt.Errorf("postgres ddl: create %s: %w", t.Name, err)
		}
	}
	return nil
}
