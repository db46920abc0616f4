package records

import (
	"encoding/json"
	"strings"
	"testing"
)

// decode is a test helper mirroring how the parsers produce Records: through
// a json.Decoder with UseNumber enabled.
func decode(t *testing.T, src string) Record {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode %q: %v", src, err)
	}
	return Record(m)
}

func TestString(t *testing.T) {
	t.Parallel()

	r := decode(t, `{"title":"Setanta matins","year":2004,"none":null}`)
	if got := r.String("title"); got != "Setanta matins" {
		t.Fatalf("String(title) = %q", got)
	}
	if got := r.String("year"); got != "2004" {
		t.Fatalf("String(year) = %q, want rendered number", got)
	}
	if got := r.String("none"); got != "" {
		t.Fatalf("String(none) = %q, want empty", got)
	}
	if got := r.String("missing"); got != "" {
		t.Fatalf("String(missing) = %q, want empty", got)
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	r := decode(t, `{"n":42,"s":"88","f":7.0}`)

	if got, err := r.Int("n"); err != nil || got != 42 {
		t.Fatalf("Int(n) = %d, %v", got, err)
	}
	// userId arrives as a quoted number in the activity logs.
	if got, err := r.Int("s"); err != nil || got != 88 {
		t.Fatalf("Int(s) = %d, %v", got, err)
	}
	if got, err := r.Int("f"); err != nil || got != 7 {
		t.Fatalf("Int(f) = %d, %v", got, err)
	}
	if _, err := r.Int("missing"); err == nil {
		t.Fatalf("Int(missing) should fail")
	}
}

func TestInt64Millis(t *testing.T) {
	t.Parallel()

	r := decode(t, `{"ts":1541440000000}`)
	got, err := r.Int64("ts")
	if err != nil {
		t.Fatalf("Int64(ts): %v", err)
	}
	if got != 1541440000000 {
		t.Fatalf("Int64(ts) = %d", got)
	}
}

func TestFloatAndFloatPtr(t *testing.T) {
	t.Parallel()

	r := decode(t, `{"duration":269.58,"lat":null,"lon":-74.00712}`)

	if got, err := r.Float("duration"); err != nil || got != 269.58 {
		t.Fatalf("Float(duration) = %v, %v", got, err)
	}
	if p := r.FloatPtr("lat"); p != nil {
		t.Fatalf("FloatPtr(lat) = %v, want nil", *p)
	}
	if p := r.FloatPtr("missing"); p != nil {
		t.Fatalf("FloatPtr(missing) = %v, want nil", *p)
	}
	p := r.FloatPtr("lon")
	if p == nil || *p != -74.00712 {
		t.Fatalf("FloatPtr(lon) = %v", p)
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	r := decode(t, `{"a":1,"b":null}`)
	if !r.Has("a") {
		t.Fatalf("Has(a) = false")
	}
	if r.Has("b") {
		t.Fatalf("Has(b) = true for null value")
	}
	if r.Has("c") {
		t.Fatalf("Has(c) = true for missing key")
	}
}
