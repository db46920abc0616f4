package etl

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pedromcvaz/udacity-data-engineer/internal/metrics"
	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"
)

// ProcessFunc handles one input file: read, transform, and insert its rows
// through repo. The driver commits after the function returns.
type ProcessFunc func(ctx context.Context, repo storage.Repository, path string) error

// Run enumerates the JSON files under root and applies fn to each in turn,
// committing after every file and logging a 1-based progress counter.
//
// The first error, whether from fn or from the commit, stops the run; files
// committed before it stay committed. job labels the per-file step metrics
// ("song_data" / "log_data").
func Run(ctx context.Context, repo storage.Repository, root, job string, fn ProcessFunc) error {
	files, err := ListJSONFiles(root)
	if err != nil {
		return err
	}
	log.Printf("%d files found in %s", len(files), root)

	for i, path := range files {
		start := time.Now()
		err := fn(ctx, repo, path)
		if err == nil {
			err = repo.Commit(ctx)
		}
		metrics.RecordStep(job, "file", err, time.Since(start))
		if err != nil {
			return fmt.Errorf("etl: %s: %w", path, err)
		}
		log.Printf("%d/%d files processed.", i+1, len(files))
	}
	return nil
}
