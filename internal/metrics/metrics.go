// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the batch loader.
//
// The global backend defaults to a no-op implementation so metric calls are
// always safe; the CLI installs a concrete backend (Pushgateway or DogStatsD)
// when one is configured. The rest of the codebase depends only on this
// package, mirroring the storage.Repository pattern: concrete metric systems
// stay isolated in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures one unit of driver work (typically one input file):
// latency plus a success/failure count. job is the dataset being loaded
// ("song_data" / "log_data").
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("sparkify_step_total", 1, lbls)
	backend.ObserveHistogram("sparkify_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRow increments a row-level counter for the given job and kind.
//
// Kinds are the target tables plus derived counts, e.g.:
//   - "songs", "artists", "time", "users", "songplays"
//   - "songplays_matched" (catalog lookup hits)
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("sparkify_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
