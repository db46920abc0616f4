// Command sparkify-etl loads the Sparkify song and activity-log datasets into
// the star schema.
//
// It runs to completion with no arguments using the historical defaults;
// flags and SPARKIFY_* environment variables override the connection
// parameters, dataset paths, and metrics backend. The song catalog is always
// loaded before the activity logs so the songplay lookup can resolve.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pedromcvaz/udacity-data-engineer/internal/config"
	"github.com/pedromcvaz/udacity-data-engineer/internal/etl"
	"github.com/pedromcvaz/udacity-data-engineer/internal/metrics"
	"github.com/pedromcvaz/udacity-data-engineer/internal/metrics/datadog"
	"github.com/pedromcvaz/udacity-data-engineer/internal/metrics/prompush"
	"github.com/pedromcvaz/udacity-data-engineer/internal/storage"

	// register all storage backends with the factory.
	_ "github.com/pedromcvaz/udacity-data-engineer/internal/storage/all"
)

func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		dogstatsdAddrFlg  string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "", "config JSON path (optional; defaults apply without it)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&dogstatsdAddrFlg, "dogstatsd-addr", "", "DogStatsD address (overrides env DOGSTATSD_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	cfg = config.ApplyEnv(cfg)

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	setupMetrics(cfg.Job, metricsBackendFlg, pushGatewayURLFlg, dogstatsdAddrFlg, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("storage: kind=%s song_data=%s log_data=%s",
			cfg.Storage.Kind, cfg.SongData, cfg.LogData)
	}

	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.DSN()})
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer repo.Close(ctx)

	if cfg.Storage.AutoCreateTables {
		if err := storage.EnsureSchema(ctx, cfg.Storage.Kind, repo); err != nil {
			log.Fatalf("create tables: %v", err)
		}
	}

	if err := etl.Run(ctx, repo, cfg.SongData, "song_data", etl.ProcessSongFile); err != nil {
		log.Fatalf("%v", err)
	}
	if err := etl.Run(ctx, repo, cfg.LogData, "log_data", etl.ProcessLogFile); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// setupMetrics installs the selected metrics backend: flag → env → default.
func setupMetrics(job, backendName, gwURLFlag, ddAddrFlag string, verbose bool) {
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	if job == "" {
		job = "sparkify_etl"
	}

	switch backendName {
	case "pushgateway":
		gwURL := gwURLFlag
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=pushgateway url=%s job=%s", gwURL, job)
		metrics.SetBackend(b)

	case "datadog":
		addr := ddAddrFlag
		if addr == "" {
			addr = os.Getenv("DOGSTATSD_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "sparkify.",
			GlobalTags: []string{"service:sparkify-etl"},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=datadog addr=%s", addr)
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
