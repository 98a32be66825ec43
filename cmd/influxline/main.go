// influxline agent - runtime metrics shipper
//
// This is the main entry point for the influxline agent. It samples Go
// runtime metrics at a configured interval and ships them to an InfluxDB
// endpoint using the influxline batching client. The output transport is
// selected by URL scheme (http, https, udp, unix, mqtt, mqtts).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nerrad567/influxline"
	"github.com/nerrad567/influxline/internal/infrastructure/config"
	"github.com/nerrad567/influxline/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting influxline agent",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the write client; the URL scheme picks the transport
	client, err := influxline.Open(cfg.Output.URL)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer func() {
		log.Info("closing output client")
		if closeErr := client.Close(); closeErr != nil {
			log.Error("error closing output client", "error", closeErr)
		}
	}()
	client.SetLogger(log)
	log.Info("output client connected", "url", cfg.Output.URL)

	// Register global tags in configured order
	for _, tag := range cfg.Agent.GlobalTags {
		client.AddGlobalTag(tag.Key, tag.Value)
	}

	// Enable batching
	client.BatchOf(cfg.Output.BatchSize, cfg.GetFlushInterval())
	log.Info("batching enabled",
		"size", cfg.Output.BatchSize,
		"flush_interval", cfg.GetFlushInterval(),
	)

	// Log connection state transitions
	client.OnTransmissionSucceeded(func() {
		log.Info("output reachable")
	})
	client.OnConnectionError(func() {
		log.Warn("output unreachable, buffering points")
	})
	client.OnBadRequest(func() {
		log.Error("output rejected points, batch dropped")
	})

	log.Info("initialisation complete, sampling runtime metrics",
		"measurement", cfg.Agent.Measurement,
		"interval", cfg.GetSampleInterval(),
	)

	// Sampling loop
	ticker := time.NewTicker(cfg.GetSampleInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")
			log.Info("influxline agent stopped")
			return nil
		case <-ticker.C:
			client.Write(samplePoint(cfg.Agent.Measurement))
		}
	}
}

// samplePoint captures a snapshot of Go runtime metrics as a single point.
func samplePoint(measurement string) *influxline.Point {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return influxline.NewPoint(measurement).
		AddField("heap_alloc", mem.HeapAlloc).
		AddField("heap_objects", mem.HeapObjects).
		AddField("gc_cycles", uint64(mem.NumGC)).
		AddField("goroutines", runtime.NumGoroutine()).
		SetTimestamp(time.Now())
}

// getConfigPath returns the configuration file path.
// Uses INFLUXLINE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("INFLUXLINE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
