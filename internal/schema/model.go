// Package schema defines the Sparkify star schema: typed rows for the four
// dimension tables and the songplays fact table, plus table definitions used
// by the storage backends for insert-statement generation and DDL bootstrap.
package schema

import "time"

// SongRow is one row of the songs dimension.
type SongRow struct {
	SongID   string
	Title    string
	ArtistID string
	Year     int
	Duration float64
}

// Values returns the row in songs column order.
func (r SongRow) Values() []any {
	return []any{r.SongID, r.Title, r.ArtistID, r.Year, r.Duration}
}

// ArtistRow is one row of the artists dimension. Latitude and Longitude are
// nil when the source file carries null coordinates.
type ArtistRow struct {
	ArtistID  string
	Name      string
	Location  string
	Latitude  *float64
	Longitude *float64
}

// Values returns the row in artists column order.
func (r ArtistRow) Values() []any {
	return []any{r.ArtistID, r.Name, r.Location, r.Latitude, r.Longitude}
}

// TimeRow is one row of the time dimension: a playback instant and its
// calendar decomposition. Weekday uses Monday=0 .. Sunday=6.
type TimeRow struct {
	StartTime time.Time
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
	Weekday   int
}

// Values returns the row in time column order.
func (r TimeRow) Values() []any {
	return []any{r.StartTime, r.Hour, r.Day, r.Week, r.Month, r.Year, r.Weekday}
}

// UserRow is one row of the users dimension. Level is the subscription tier
// ("free" or "paid") at the time of the event; a user changing tiers shows up
// as multiple rows, last insert wins downstream.
type UserRow struct {
	UserID    int
	FirstName string
	LastName  string
	Gender    string
	Level     string
}

// Values returns the row in users column order.
func (r UserRow) Values() []any {
	return []any{r.UserID, r.FirstName, r.LastName, r.Gender, r.Level}
}

// SongplayRow is one row of the songplays fact table. SongID and ArtistID are
// nil when the catalog lookup found no exact title/name/duration match.
type SongplayRow struct {
	StartTime time.Time
	UserID    int
	Level     string
	SongID    *string
	ArtistID  *string
	SessionID int
	Location  string
	UserAgent string
}

// Values returns the row in songplays column order.
func (r SongplayRow) Values() []any {
	return []any{r.StartTime, r.UserID, r.Level, r.SongID, r.ArtistID, r.SessionID, r.Location, r.UserAgent}
}
