// Package transform projects parsed input records into the typed rows defined
// by internal/schema.
//
// The transforms are intentionally literal: fields are carried through with
// only the type coercion the target column requires, no normalization, no
// deduplication. A record missing a required field is an error that the
// caller propagates; partially-populated rows never reach the loader.
package transform

import (
	"fmt"

	"github.com/pedromcvaz/udacity-data-engineer/internal/records"
	"github.com/pedromcvaz/udacity-data-engineer/internal/schema"
)

// SongRows projects one song-metadata record into its songs and artists rows.
//
// Required fields: song_id, title, artist_id, artist_name. Year defaults to 0
// when absent or null (the dataset uses 0 for unknown years); duration
// defaults to 0; artist coordinates stay nil when null.
func SongRows(rec records.Record) (schema.SongRow, schema.ArtistRow, error) {
	for _, key := range []string{"song_id", "title", "artist_id", "artist_name"} {
		if !rec.Has(key) {
			return schema.SongRow{}, schema.ArtistRow{}, fmt.Errorf("transform: song record missing %q", key)
		}
	}

	year := 0
	if rec.Has("year") {
		y, err := rec.Int("year")
		if err != nil {
			return schema.SongRow{}, schema.ArtistRow{}, err
		}
		year = y
	}

	var duration float64
	if rec.Has("duration") {
		d, err := rec.Float("duration")
		if err != nil {
			return schema.SongRow{}, schema.ArtistRow{}, err
		}
		duration = d
	}

	song := schema.SongRow{
		SongID:   rec.String("song_id"),
		Title:    rec.String("title"),
		ArtistID: rec.String("artist_id"),
		Year:     year,
		Duration: duration,
	}
	artist := schema.ArtistRow{
		ArtistID:  rec.String("artist_id"),
		Name:      rec.String("artist_name"),
		Location:  rec.String("artist_location"),
		Latitude:  rec.FloatPtr("artist_latitude"),
		Longitude: rec.FloatPtr("artist_longitude"),
	}
	return song, artist, nil
}
