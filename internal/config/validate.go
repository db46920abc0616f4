// This file adds a lightweight linter for Config values: static checks that
// return a list of issues (errors and warnings) which the CLI surfaces before
// a run, or standalone via the -validate flag.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding worth surfacing that does not
	// block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "storage.kind"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error where convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue carries error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of a Config without mutating it.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics from this run will carry a blank job label",
		})
	}

	switch c.Storage.Kind {
	case "postgres":
		pg := c.Storage.Postgres
		if strings.TrimSpace(pg.Host) == "" {
			issues = append(issues, Issue{SeverityError, "storage.postgres.host", "host must not be empty"})
		}
		if pg.Port <= 0 || pg.Port > 65535 {
			issues = append(issues, Issue{SeverityError, "storage.postgres.port", fmt.Sprintf("port %d is out of range", pg.Port)})
		}
		if strings.TrimSpace(pg.Database) == "" {
			issues = append(issues, Issue{SeverityError, "storage.postgres.database", "database must not be empty"})
		}
		if strings.TrimSpace(pg.User) == "" {
			issues = append(issues, Issue{SeverityError, "storage.postgres.user", "user must not be empty"})
		}
	case "sqlite":
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			issues = append(issues, Issue{SeverityError, "storage.sqlite_path", "sqlite_path must not be empty"})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unsupported kind %q (want postgres or sqlite)", c.Storage.Kind),
		})
	}

	if strings.TrimSpace(c.SongData) == "" {
		issues = append(issues, Issue{SeverityError, "song_data_path", "song data path must not be empty"})
	}
	if strings.TrimSpace(c.LogData) == "" {
		issues = append(issues, Issue{SeverityError, "log_data_path", "log data path must not be empty"})
	}

	return issues
}
