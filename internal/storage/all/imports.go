// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: blank-importing it runs the init
// functions of each backend package, which register their factories and DDL
// bootstrappers with the storage package. The CLI imports this package so it
// never has to name a database driver directly:
//
//	import _ "github.com/pedromcvaz/udacity-data-engineer/internal/storage/all"
//
// Available kinds after import: "postgres", "sqlite".
package all

import (
	_ "github.com/pedromcvaz/udacity-data-engineer/internal/storage/postgres"
	_ "github.com/pedromcvaz/udacity-data-engineer/internal/storage/sqlite"
)
