package transform

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pedromcvaz/udacity-data-engineer/internal/records"
)

func rec(t *testing.T, src string) records.Record {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return records.Record(m)
}

const songJSON = `{
	"num_songs": 1,
	"artist_id": "AR5KOSW1187FB35FF4",
	"artist_latitude": 49.80388,
	"artist_longitude": 15.47491,
	"artist_location": "Dubai UAE",
	"artist_name": "Elena",
	"song_id": "SOZCTXZ12AB0182364",
	"title": "Setanta matins",
	"duration": 269.58232,
	"year": 0
}`

func TestSongRows_TupleOrder(t *testing.T) {
	t.Parallel()

	song, artist, err := SongRows(rec(t, songJSON))
	if err != nil {
		t.Fatalf("SongRows: %v", err)
	}

	sv := song.Values()
	wantSong := []any{"SOZCTXZ12AB0182364", "Setanta matins", "AR5KOSW1187FB35FF4", 0, 269.58232}
	for i := range wantSong {
		if sv[i] != wantSong[i] {
			t.Fatalf("song values[%d] = %v, want %v", i, sv[i], wantSong[i])
		}
	}

	av := artist.Values()
	if av[0] != "AR5KOSW1187FB35FF4" || av[1] != "Elena" || av[2] != "Dubai UAE" {
		t.Fatalf("artist values = %v", av)
	}
	lat, ok := av[3].(*float64)
	if !ok || lat == nil || *lat != 49.80388 {
		t.Fatalf("artist latitude = %v", av[3])
	}
	lon, ok := av[4].(*float64)
	if !ok || lon == nil || *lon != 15.47491 {
		t.Fatalf("artist longitude = %v", av[4])
	}
}

func TestSongRows_NullCoordinates(t *testing.T) {
	t.Parallel()

	src := `{"artist_id":"A1","artist_name":"N","artist_location":"",
		"artist_latitude":null,"artist_longitude":null,
		"song_id":"S1","title":"T","duration":12.5,"year":1999}`

	_, artist, err := SongRows(rec(t, src))
	if err != nil {
		t.Fatalf("SongRows: %v", err)
	}
	if artist.Latitude != nil || artist.Longitude != nil {
		t.Fatalf("null coordinates should project to nil, got %v/%v", artist.Latitude, artist.Longitude)
	}
}

func TestSongRows_MissingRequiredField(t *testing.T) {
	t.Parallel()

	src := `{"artist_id":"A1","artist_name":"N","title":"T","duration":1.0}`
	if _, _, err := SongRows(rec(t, src)); err == nil {
		t.Fatalf("SongRows without song_id should fail")
	}
}
