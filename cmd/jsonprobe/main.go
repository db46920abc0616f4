// Command jsonprobe inspects a Sparkify dataset directory before a load.
//
// It walks one or more roots of JSON files, decodes every object, and prints a
// per-root summary: file and object counts, duplicate files (by content hash),
// and per-field frequency with inferred types and SQL-safe column names. The
// output is meant for eyeballing a new dataset drop and deciding whether the
// loader's schema still fits.
//
// Roots are scanned concurrently; files within a root are fanned out to a
// bounded worker pool.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pedromcvaz/udacity-data-engineer/internal/etl"
	jsonparser "github.com/pedromcvaz/udacity-data-engineer/internal/parser/json"
	"github.com/pedromcvaz/udacity-data-engineer/internal/records"
)

// fieldStat accumulates observations for one raw field name across a root.
type fieldStat struct {
	Name       string   `json:"name"`
	Normalized string   `json:"normalized"`
	Count      int      `json:"count"`
	Nulls      int      `json:"nulls,omitempty"`
	Types      []string `json:"types"`
	Sample     string   `json:"sample,omitempty"`

	types map[string]bool
}

// rootReport is the printed summary for a single scanned root.
type rootReport struct {
	Root       string       `json:"root"`
	Files      int          `json:"files"`
	Objects    int          `json:"objects"`
	Duplicates [][]string   `json:"duplicate_files,omitempty"`
	Fields     []*fieldStat `json:"fields"`
}

func main() {
	var (
		flagSongData = flag.String("song-data", "data/song_data", "song metadata root to scan (empty to skip)")
		flagLogData  = flag.String("log-data", "data/log_data", "activity log root to scan (empty to skip)")
		flagWorkers  = flag.Int("workers", runtime.NumCPU(), "max concurrent file scans per root")
		flagPretty   = flag.Bool("pretty", true, "pretty-print JSON output")
	)
	flag.Parse()

	var roots []string
	for _, r := range []string{*flagSongData, *flagLogData} {
		if r != "" {
			roots = append(roots, r)
		}
	}
	if len(roots) == 0 {
		fmt.Fprintln(os.Stderr, "nothing to scan: both roots empty")
		os.Exit(2)
	}

	ctx := context.Background()
	reports := make([]*rootReport, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			rep, err := scanRoot(ctx, root, *flagWorkers)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("probe: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *flagPretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(reports); err != nil {
		log.Fatalf("encode report: %v", err)
	}
}

// scanRoot walks one dataset root and aggregates file digests and field stats.
func scanRoot(ctx context.Context, root string, workers int) (*rootReport, error) {
	files, err := etl.ListJSONFiles(root)
	if err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = 1
	}

	var (
		mu       sync.Mutex
		objects  int
		stats    = map[string]*fieldStat{}
		byDigest = map[uint64][]string{}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			recs, err := jsonparser.DecodeAll(bytes.NewReader(raw))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			digest := xxh3.Hash(raw)

			mu.Lock()
			defer mu.Unlock()
			byDigest[digest] = append(byDigest[digest], path)
			objects += len(recs)
			for _, rec := range recs {
				observe(stats, rec)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &rootReport{
		Root:    root,
		Files:   len(files),
		Objects: objects,
	}
	for _, paths := range byDigest {
		if len(paths) > 1 {
			sort.Strings(paths)
			rep.Duplicates = append(rep.Duplicates, paths)
		}
	}
	sort.Slice(rep.Duplicates, func(i, j int) bool {
		return rep.Duplicates[i][0] < rep.Duplicates[j][0]
	})

	for _, st := range stats {
		for t := range st.types {
			st.Types = append(st.Types, t)
		}
		sort.Strings(st.Types)
		rep.Fields = append(rep.Fields, st)
	}
	sort.Slice(rep.Fields, func(i, j int) bool {
		return rep.Fields[i].Name < rep.Fields[j].Name
	})
	return rep, nil
}

// observe folds one decoded object into the per-field stats.
func observe(stats map[string]*fieldStat, rec records.Record) {
	for name, v := range rec {
		st := stats[name]
		if st == nil {
			st = &fieldStat{
				Name:       name,
				Normalized: normalizeFieldName(name),
				types:      map[string]bool{},
			}
			stats[name] = st
		}
		st.Count++
		if v == nil {
			st.Nulls++
			continue
		}
		st.types[inferType(v)] = true
		if st.Sample == "" {
			st.Sample = sampleString(v)
		}
	}
}

// inferType maps a decoded JSON value onto a coarse SQL-ish type label.
func inferType(v any) string {
	switch x := v.(type) {
	case json.Number:
		if !strings.ContainsAny(x.String(), ".eE") {
			return "integer"
		}
		return "real"
	case string:
		return "text"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "text"
	}
}

func sampleString(v any) string {
	s := fmt.Sprintf("%v", v)
	const max = 60
	if len(s) > max {
		s = s[:max] + "…"
	}
	return s
}

// normalizeFieldName converts arbitrary field text into a lowercase ASCII
// identifier suitable for SQL schemas:
//  1. lowercase
//  2. strip accents (NFD → remove Mn → NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop others
//  4. fallback to "col" if empty
func normalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// Decompose → remove nonspacing marks (accents) → recompose.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevUnderscore = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "col"
	}
	return name
}
