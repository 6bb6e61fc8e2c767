// Command analyze runs one full classification pass over the scraped corpus
// and writes the run report.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"observatory/internal/bootstrap"
	"observatory/internal/config"
	"observatory/internal/observability"
	"observatory/internal/pipeline"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "observatory-analyze",
		Environment:  cfg.Env,
		Enabled:      cfg.TraceExporter != "" && cfg.TraceExporter != "none",
		Exporter:     cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	runner, err := pipeline.NewRunner(cfg, db)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := runner.Run(ctx)
	if err != nil {
		log.Printf("Run failed: %v", err)
		_ = shutdownTracing(context.Background())
		os.Exit(1)
	}

	log.Printf("Run %s complete: %d accounts", report.RunID, report.AccountCount)
	for verdict, n := range report.Counts {
		log.Printf("  %-18s %d", verdict, n)
	}

	if err := shutdownTracing(context.Background()); err != nil {
		log.Printf("Tracing shutdown error: %v", err)
	}
}
