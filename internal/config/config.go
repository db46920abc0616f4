// Package config defines the explicit configuration model for the loader.
//
// The original tool hard-coded its connection parameters and dataset paths;
// here they form a JSON-serializable struct with those same values as
// defaults, each overridable by a config file and then by environment
// variables (flag → env → default precedence is handled at the CLI layer).
//
// Decoding uses only the standard library, matching the rest of the project:
// pipelines are small enough that a config framework would outweigh them.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config is the full runtime configuration.
type Config struct {
	// Job labels metrics and log lines for this run.
	Job string `json:"job"`

	// Storage selects and configures the database backend.
	Storage Storage `json:"storage"`

	// SongData is the root directory walked for song-metadata files.
	SongData string `json:"song_data_path"`

	// LogData is the root directory walked for activity-log files.
	LogData string `json:"log_data_path"`
}

// Storage selects the sink used to persist rows.
type Storage struct {
	// Kind selects the backend: "postgres" (default) or "sqlite".
	Kind string `json:"kind"`

	// Postgres carries connection parameters for the "postgres" kind.
	Postgres Postgres `json:"postgres"`

	// SQLitePath is the database path for the "sqlite" kind.
	SQLitePath string `json:"sqlite_path"`

	// AutoCreateTables applies CREATE TABLE IF NOT EXISTS for the five
	// target tables before loading.
	AutoCreateTables bool `json:"auto_create_tables"`
}

// Postgres holds the individual connection parameters; they are assembled
// into a pgx keyword/value DSN by Config.DSN.
type Postgres struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Default returns the configuration matching the historical hard-coded
// values.
func Default() Config {
	return Config{
		Job: "sparkify_etl",
		Storage: Storage{
			Kind: "postgres",
			Postgres: Postgres{
				Host:     "127.0.0.1",
				Port:     5432,
				Database: "sparkifydb",
				User:     "student",
				Password: "student",
			},
			SQLitePath: "sparkify.db",
		},
		SongData: "data/song_data",
		LogData:  "data/log_data",
	}
}

// Load decodes the JSON file at path over the defaults, so a partial config
// file only overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Environment variable names recognized by ApplyEnv.
const (
	EnvDBHost      = "SPARKIFY_DB_HOST"
	EnvDBPort      = "SPARKIFY_DB_PORT"
	EnvDBName      = "SPARKIFY_DB_NAME"
	EnvDBUser      = "SPARKIFY_DB_USER"
	EnvDBPassword  = "SPARKIFY_DB_PASSWORD"
	EnvSongData    = "SPARKIFY_SONG_DATA"
	EnvLogData     = "SPARKIFY_LOG_DATA"
	EnvStorageKind = "SPARKIFY_STORAGE_KIND"
	EnvSQLitePath  = "SPARKIFY_SQLITE_PATH"
)

// ApplyEnv overlays recognized environment variables onto cfg. Unset and
// empty variables leave the corresponding field untouched.
func ApplyEnv(cfg Config) Config {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setStr(&cfg.Storage.Postgres.Host, EnvDBHost)
	setStr(&cfg.Storage.Postgres.Database, EnvDBName)
	setStr(&cfg.Storage.Postgres.User, EnvDBUser)
	setStr(&cfg.Storage.Postgres.Password, EnvDBPassword)
	setStr(&cfg.SongData, EnvSongData)
	setStr(&cfg.LogData, EnvLogData)
	setStr(&cfg.Storage.Kind, EnvStorageKind)
	setStr(&cfg.Storage.SQLitePath, EnvSQLitePath)

	if v := os.Getenv(EnvDBPort); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.Port = p
		}
	}
	return cfg
}

// DSN assembles the backend connection string for the selected storage kind.
func (c Config) DSN() string {
	switch c.Storage.Kind {
	case "sqlite":
		return c.Storage.SQLitePath
	default:
		pg := c.Storage.Postgres
		return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s",
			pg.Host, pg.Port, pg.Database, pg.User, pg.Password)
	}
}
