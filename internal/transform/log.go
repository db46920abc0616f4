package transform

import (
	"time"

	"github.com/pedromcvaz/udacity-data-engineer/internal/records"
	"github.com/pedromcvaz/udacity-data-engineer/internal/schema"
)

// NextSongPage is the page value marking an actual song playback; every other
// event type (Home, Login, Logout, ...) is discarded by the log pipeline.
const NextSongPage = "NextSong"

// IsNextSong reports whether a log record is a playback event.
func IsNextSong(rec records.Record) bool {
	return rec.String("page") == NextSongPage
}

// TimeFromMillis decomposes a millisecond UTC epoch into a time-dimension row.
// Weekday follows the Monday=0 .. Sunday=6 convention.
func TimeFromMillis(ms int64) schema.TimeRow {
	t := time.UnixMilli(ms).UTC()
	_, week := t.ISOWeek()
	return schema.TimeRow{
		StartTime: t,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}

// TimeRow derives the time-dimension row from a log record's "ts" field.
func TimeRow(rec records.Record) (schema.TimeRow, error) {
	ms, err := rec.Int64("ts")
	if err != nil {
		return schema.TimeRow{}, err
	}
	return TimeFromMillis(ms), nil
}

// UserRow projects the user-dimension columns from a log record. The level is
// whatever the record carried; tier changes surface as additional rows.
func UserRow(rec records.Record) (schema.UserRow, error) {
	id, err := rec.Int("userId")
	if err != nil {
		return schema.UserRow{}, err
	}
	return schema.UserRow{
		UserID:    id,
		FirstName: rec.String("firstName"),
		LastName:  rec.String("lastName"),
		Gender:    rec.String("gender"),
		Level:     rec.String("level"),
	}, nil
}

// SongplayRow assembles the fact row for a playback event. songID and
// artistID come from the catalog lookup and are nil when unresolved.
func SongplayRow(rec records.Record, songID, artistID *string) (schema.SongplayRow, error) {
	ms, err := rec.Int64("ts")
	if err != nil {
		return schema.SongplayRow{}, err
	}
	userID, err := rec.Int("userId")
	if err != nil {
		return schema.SongplayRow{}, err
	}
	sessionID, err := rec.Int("sessionId")
	if err != nil {
		return schema.SongplayRow{}, err
	}
	return schema.SongplayRow{
		StartTime: time.UnixMilli(ms).UTC(),
		UserID:    userID,
		Level:     rec.String("level"),
		SongID:    songID,
		ArtistID:  artistID,
		SessionID: sessionID,
		Location:  rec.String("location"),
		UserAgent: rec.String("userAgent"),
	}, nil
}

// LookupKey carries the three fields that resolve a playback event against
// the song/artist catalog: exact song title, artist name, and track length.
type LookupKey struct {
	Title    string
	Artist   string
	Duration float64
}

// LookupKeyFromRecord extracts the catalog-lookup key from a log record.
func LookupKeyFromRecord(rec records.Record) (LookupKey, error) {
	length, err := rec.Float("length")
	if err != nil {
		return LookupKey{}, err
	}
	return LookupKey{
		Title:    rec.String("song"),
		Artist:   rec.String("artist"),
		Duration: length,
	}, nil
}
