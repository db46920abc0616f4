package etl

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pedromcvaz/udacity-data-engineer/internal/metrics"
	jsonparser "github.com/pedromcvaz/udacity-data-engineer/internal/parser/json"
	"github.com/pedromcvaz/udacity-data-engineer/internal/records"
	"github.com/pedromcvaz/udacity-data-engineer/internal/schema"
	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
	"github.com/pedromcvaz/udacity-data-engineer/internal/transform"
)

// ProcessLogFile loads one activity-log file. Only NextSong events survive the
// filter; each surviving record yields one time row, one users row, and one
// songplays row, inserted table by table so that every time mark exists
// before the fact row referencing it.
//
// No deduplication happens at any stage: a user active N times in one file is
// inserted N times, and identical timestamps yield repeated time rows.
func ProcessLogFile(ctx context.Context, repo storage.Repository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	dec := jsonparser.NewDecoder(f)
	var kept []records.Record
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if transform.IsNextSong(rec) {
			kept = append(kept, rec)
		}
	}

	for _, rec := range kept {
		row, err := transform.TimeRow(rec)
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, schema.Time.Name, schema.Time.ColumnNames(), row.Values()); err != nil {
			return err
		}
	}

	for _, rec := range kept {
		row, err := transform.UserRow(rec)
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, schema.Users.Name, schema.Users.ColumnNames(), row.Values()); err != nil {
			return err
		}
	}

	matched := 0
	for _, rec := range kept {
		key, err := transform.LookupKeyFromRecord(rec)
		if err != nil {
			return err
		}

		var songID, artistID *string
		sid, aid, ok, err := repo.LookupSong(ctx, key.Title, key.Artist, key.Duration)
		if err != nil {
			return err
		}
		if ok {
			songID, artistID = &sid, &aid
			matched++
		}

		row, err := transform.SongplayRow(rec, songID, artistID)
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, schema.Songplays.Name, schema.Songplays.ColumnNames(), row.Values()); err != nil {
			return err
		}
	}

	n := int64(len(kept))
	metrics.RecordRow("log_data", "time", n)
	metrics.RecordRow("log_data", "users", n)
	metrics.RecordRow("log_data", "songplays", n)
	metrics.RecordRow("log_data", "songplays_matched", int64(matched))
	return nil
}
