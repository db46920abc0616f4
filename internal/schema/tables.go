package schema

// Kind is a backend-agnostic column type. Each storage backend maps kinds to
// its own SQL types when building statements (e.g. KindReal becomes
// DOUBLE PRECISION on Postgres and REAL on SQLite).
type Kind string

const (
	KindText      Kind = "text"
	KindInt       Kind = "int"
	KindReal      Kind = "real"
	KindTimestamp Kind = "timestamp"
)

// Column describes one column of a target table.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Table holds a table name and its ordered column list. The column order is
// the insert order; Row.Values() implementations in this package emit values
// in exactly this order.
type Table struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the ordered column names for insert statements.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// The five target tables.
//
// None of them declares a primary key or uniqueness constraint: the loader
// performs plain inserts and re-running a batch duplicates dimension rows.
// That matches the observable behavior this tool is specified to keep.
var (
	Songs = Table{
		Name: "songs",
		Columns: []Column{
			{Name: "song_id", Kind: KindText},
			{Name: "title", Kind: KindText},
			{Name: "artist_id", Kind: KindText},
			{Name: "year", Kind: KindInt},
			{Name: "duration", Kind: KindReal},
		},
	}

	Artists = Table{
		Name: "artists",
		Columns: []Column{
			{Name: "artist_id", Kind: KindText},
			{Name: "name", Kind: KindText},
			{Name: "location", Kind: KindText},
			{Name: "latitude", Kind: KindReal, Nullable: true},
			{Name: "longitude", Kind: KindReal, Nullable: true},
		},
	}

	Time = Table{
		Name: "time",
		Columns: []Column{
			{Name: "start_time", Kind: KindTimestamp},
			{Name: "hour", Kind: KindInt},
			{Name: "day", Kind: KindInt},
			{Name: "week", Kind: KindInt},
			{Name: "month", Kind: KindInt},
			{Name: "year", Kind: KindInt},
			{Name: "weekday", Kind: KindInt},
		},
	}

	Users = Table{
		Name: "users",
		Columns: []Column{
			{Name: "user_id", Kind: KindInt},
			{Name: "first_name", Kind: KindText},
			{Name: "last_name", Kind: KindText},
			{Name: "gender", Kind: KindText},
			{Name: "level", Kind: KindText},
		},
	}

	Songplays = Table{
		Name: "songplays",
		Columns: []Column{
			{Name: "start_time", Kind: KindTimestamp},
			{Name: "user_id", Kind: KindInt},
			{Name: "level", Kind: KindText},
			{Name: "song_id", Kind: KindText, Nullable: true},
			{Name: "artist_id", Kind: KindText, Nullable: true},
			{Name: "session_id", Kind: KindInt},
			{Name: "location", Kind: KindText},
			{Name: "user_agent", Kind: KindText},
		},
	}
)

// Tables lists every target table in dependency-safe creation order.
func Tables() []Table {
	return []Table{Songs, Artists, Time, Users, Songplays}
}
