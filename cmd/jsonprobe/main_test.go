package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func jsonNumber(s string) json.Number { return json.Number(s) }

//
// ---- normalizeFieldName -----------------------------------------------------
//

func TestNormalizeFieldName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"artist_name", "artist_name"},
		{"Artist Name", "artist_name"},
		{"userId", "userid"},
		{"Durée (sec)", "duree_sec"},
		{"  spaced  out  ", "spaced_out"},
		{"date.of-birth", "date_of_birth"},
		{"___", "col"},
		{"", "col"},
		{"%%%", "col"},
		{"Ça va?", "ca_va"},
	}
	for _, c := range cases {
		if got := normalizeFieldName(c.in); got != c.want {
			t.Errorf("normalizeFieldName(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

//
// ---- inferType --------------------------------------------------------------
//

func TestInferType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"integer", jsonNumber("42"), "integer"},
		{"real", jsonNumber("271.93"), "real"},
		{"exponent", jsonNumber("1e3"), "real"},
		{"text", "SOMZWCG12A8C13C480", "text"},
		{"bool", true, "boolean"},
		{"object", map[string]any{"a": 1}, "object"},
		{"array", []any{1, 2}, "array"},
	}
	for _, c := range cases {
		if got := inferType(c.in); got != c.want {
			t.Errorf("%s: inferType = %q; want %q", c.name, got, c.want)
		}
	}
}

//
// ---- scanRoot ---------------------------------------------------------------
//

// TestScanRoot_StatsAndDuplicates runs scanRoot over a small tree containing
// two byte-identical files and checks the counts, field stats, and the
// duplicate grouping.
func TestScanRoot_StatsAndDuplicates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	song := `{"song_id": "SOUPIRU12A6D4FA1E1", "title": "Der Kleine Dompfaff", "year": 0, "duration": 152.92036, "artist_latitude": null}`
	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("A/one.json", song)
	write("B/copy.json", song) // identical bytes, different path
	write("A/two.json", `{"song_id": "SOMZWCG12A8C13C480", "title": "Setanta matins", "year": 2003, "duration": 207.77751}`)

	rep, err := scanRoot(context.Background(), root, 4)
	if err != nil {
		t.Fatalf("scanRoot error: %v", err)
	}

	if rep.Files != 3 {
		t.Fatalf("Files = %d; want 3", rep.Files)
	}
	if rep.Objects != 3 {
		t.Fatalf("Objects = %d; want 3", rep.Objects)
	}
	if len(rep.Duplicates) != 1 || len(rep.Duplicates[0]) != 2 {
		t.Fatalf("Duplicates = %v; want one group of two", rep.Duplicates)
	}

	byName := map[string]*fieldStat{}
	for _, st := range rep.Fields {
		byName[st.Name] = st
	}

	dur := byName["duration"]
	if dur == nil || dur.Count != 3 {
		t.Fatalf("duration stat = %+v; want count 3", dur)
	}
	if len(dur.Types) != 1 || dur.Types[0] != "real" {
		t.Fatalf("duration types = %v; want [real]", dur.Types)
	}

	year := byName["year"]
	if year == nil || len(year.Types) != 1 || year.Types[0] != "integer" {
		t.Fatalf("year stat = %+v; want integer", year)
	}

	lat := byName["artist_latitude"]
	if lat == nil || lat.Count != 2 || lat.Nulls != 2 {
		t.Fatalf("artist_latitude stat = %+v; want count 2, nulls 2", lat)
	}
}

// TestScanRoot_MissingRoot confirms the error from the file walk propagates.
func TestScanRoot_MissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := scanRoot(context.Background(), filepath.Join(t.TempDir(), "nope"), 1); err == nil {
		t.Fatal("expected error for missing root")
	}
}
