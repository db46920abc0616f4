package config

import (
	"strings"
	"testing"
)

func findIssue(issues []Issue, path string) *Issue {
	for i := range issues {
		if issues[i].Path == path {
			return &issues[i]
		}
	}
	return nil
}

func TestValidate_DefaultIsClean(t *testing.T) {
	t.Parallel()

	if issues := Validate(Default()); HasErrors(issues) {
		t.Fatalf("default config has errors: %v", issues)
	}
}

func TestValidate_PostgresFields(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Storage.Postgres.Host = ""
	cfg.Storage.Postgres.Port = 0
	cfg.Storage.Postgres.Database = " "
	cfg.Storage.Postgres.User = ""

	issues := Validate(cfg)
	for _, path := range []string{
		"storage.postgres.host",
		"storage.postgres.port",
		"storage.postgres.database",
		"storage.postgres.user",
	} {
		iss := findIssue(issues, path)
		if iss == nil || iss.Severity != SeverityError {
			t.Fatalf("expected error at %s, issues: %v", path, issues)
		}
	}
}

func TestValidate_UnsupportedKind(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Storage.Kind = "oracle"

	issues := Validate(cfg)
	iss := findIssue(issues, "storage.kind")
	if iss == nil || iss.Severity != SeverityError {
		t.Fatalf("expected storage.kind error, issues: %v", issues)
	}
	if !strings.Contains(iss.Message, "oracle") {
		t.Fatalf("message should name the bad kind: %s", iss.Message)
	}
}

func TestValidate_SQLiteNeedsPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Storage.Kind = "sqlite"
	cfg.Storage.SQLitePath = ""

	if issues := Validate(cfg); !HasErrors(issues) {
		t.Fatalf("sqlite without path should be an error")
	}
}

func TestValidate_EmptyJobIsWarning(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Job = ""

	issues := Validate(cfg)
	iss := findIssue(issues, "job")
	if iss == nil || iss.Severity != SeverityWarning {
		t.Fatalf("empty job should warn, issues: %v", issues)
	}
	if HasErrors(issues) {
		t.Fatalf("empty job alone must not block execution")
	}
}

func TestIssue_Error(t *testing.T) {
	t.Parallel()

	iss := Issue{SeverityError, "song_data_path", "song data path must not be empty"}
	want := "error at song_data_path: song data path must not be empty"
	if iss.Error() != want {
		t.Fatalf("Error() = %q", iss.Error())
	}
}
