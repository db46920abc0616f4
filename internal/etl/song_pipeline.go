package etl

import (
	"context"
	"fmt"
	"os"

	"github.com/pedromcvaz/udacity-data-engineer/internal/metrics"
	jsonparser "github.com/pedromcvaz/udacity-data-engineer/internal/parser/json"
	"github.com/pedromcvaz/udacity-data-engineer/internal/schema"
	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
	"github.com/pedromcvaz/udacity-data-engineer/internal/transform"
)

// ProcessSongFile loads one song-metadata file: the single JSON object is
// projected into one songs row and one artists row, inserted in that order.
// The song catalog must be loaded before the activity logs so that the
// songplay lookup can resolve against it.
func ProcessSongFile(ctx context.Context, repo storage.Repository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open song file: %w", err)
	}
	defer f.Close()

	rec, err := jsonparser.DecodeObject(f)
	if err != nil {
		return err
	}

	song, artist, err := transform.SongRows(rec)
	if err != nil {
		return err
	}

	if err := repo.Insert(ctx, schema.Songs.Name, schema.Songs.ColumnNames(), song.Values()); err != nil {
		return err
	}
	if err := repo.Insert(ctx, schema.Artists.Name, schema.Artists.ColumnNames(), artist.Values()); err != nil {
		return err
	}

	metrics.RecordRow("song_data", "songs", 1)
	metrics.RecordRow("song_data", "artists", 1)
	return nil
}
