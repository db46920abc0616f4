// Package json turns the two Sparkify input file shapes into records.Record
// maps.
//
// The dataset uses exactly two layouts:
//
//   - Song-metadata files: a single JSON object per file:
//     {"song_id":"SOZCTXZ12AB0182364","title":"Setanta matins",...}
//   - Activity-log files: one JSON object per line (NDJSON):
//     {"page":"NextSong","ts":1541440000000,...}
//     {"page":"Home","ts":1541440100000,...}
//
// Top-level arrays and primitives are rejected; the loaders have no use for
// them and silently reshaping them would hide malformed input files.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pedromcvaz/udacity-data-engineer/internal/records"
)

// Decoder provides a record-oriented view over an NDJSON stream (the
// activity-log file layout).
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder constructs a Decoder from an io.Reader.
func NewDecoder(r io.Reader) *Decoder {
	d := json.NewDecoder(r)
	// UseNumber so callers decide how to map numeric values; the logs mix
	// integer epochs, float durations, and quoted numeric ids.
	d.UseNumber()
	return &Decoder{dec: d}
}

// Next reads the next JSON object from the stream and returns it as a
// records.Record. Non-object top-level values are skipped. io.EOF is returned
// when the stream is exhausted.
func (d *Decoder) Next() (records.Record, error) {
	for {
		var raw any
		if err := d.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("json parser: decode: %w", err)
		}

		switch m := raw.(type) {
		case map[string]any:
			return records.Record(m), nil
		default:
			// Skip junk lines; the caller only ever wants objects.
			continue
		}
	}
}

// DecodeObject reads exactly one JSON object from r (the song-metadata file
// layout). A top-level array or primitive is an error, as is an empty input.
func DecodeObject(r io.Reader) (records.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("json parser: empty input")
		}
		return nil, fmt.Errorf("json parser: decode object: %w", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("json parser: unsupported top-level JSON type %T", root)
	}
	return records.Record(obj), nil
}

// DecodeAll reads every object from an NDJSON stream. Helper for tests and
// tools; the ETL pipelines use the streaming Next API.
func DecodeAll(r io.Reader) ([]records.Record, error) {
	dec := NewDecoder(r)
	var out []records.Record
	for {
		rec, err := dec.Next()
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, err
		}
		out = append(out, rec)
	}
}
