package json

import (
	"io"
	"strings"
	"testing"
)

func TestDecodeObject_SongFile(t *testing.T) {
	t.Parallel()

	src := `{
		"song_id": "SOZCTXZ12AB0182364",
		"title": "Setanta matins",
		"artist_id": "AR5KOSW1187FB35FF4",
		"year": 0,
		"duration": 269.58232,
		"artist_name": "Elena",
		"artist_latitude": 49.80388,
		"artist_longitude": 15.47491,
		"artist_location": "Dubai UAE"
	}`

	rec, err := DecodeObject(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if got := rec.String("song_id"); got != "SOZCTXZ12AB0182364" {
		t.Fatalf("song_id = %q", got)
	}
	if got, err := rec.Float("duration"); err != nil || got != 269.58232 {
		t.Fatalf("duration = %v, %v", got, err)
	}
}

func TestDecodeObject_RejectsNonObject(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
	}{
		{"array", `[{"a":1}]`},
		{"number", `42`},
		{"string", `"hello"`},
		{"empty", ``},
		{"garbage", `{not json`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeObject(strings.NewReader(tc.src)); err == nil {
				t.Fatalf("DecodeObject(%q) succeeded, want error", tc.src)
			}
		})
	}
}

func TestDecoder_Next_NDJSON(t *testing.T) {
	t.Parallel()

	src := `{"page":"NextSong","ts":1}
{"page":"Home","ts":2}
{"page":"NextSong","ts":3}`

	dec := NewDecoder(strings.NewReader(src))

	var pages []string
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		pages = append(pages, rec.String("page"))
	}
	if len(pages) != 3 {
		t.Fatalf("got %d records, want 3", len(pages))
	}
	if pages[0] != "NextSong" || pages[1] != "Home" || pages[2] != "NextSong" {
		t.Fatalf("pages = %v", pages)
	}
}

func TestDecoder_Next_SkipsNonObjects(t *testing.T) {
	t.Parallel()

	src := `42
{"page":"NextSong"}
"junk"
{"page":"Home"}`

	recs, err := DecodeAll(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2 (non-objects skipped)", len(recs))
	}
}

func TestDecoder_Next_PropagatesSyntaxError(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader(`{"ok":true}` + "\n" + `{broken`))
	if _, err := dec.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if _, err := dec.Next(); err == nil || err == io.EOF {
		t.Fatalf("second Next err = %v, want syntax error", err)
	}
}

func TestDecodeAll_Empty(t *testing.T) {
	t.Parallel()

	recs, err := DecodeAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("got %d records, want 0", len(recs))
	}
}
