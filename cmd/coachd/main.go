// Coachd is an interview coaching daemon that scores spoken answers, writes
// multilingual feedback and translates interface text.
//
// Usage:
//
//	coachd [flags]
//	coachd --config /path/to/coachd.yaml
//
// @title       coachd API
// @version     1.0
// @description Interview answer analysis, interview coaching and multilingual feedback.
// @BasePath    /
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nadzzz/coachd/internal/config"
	"github.com/nadzzz/coachd/internal/engine"
	"github.com/nadzzz/coachd/internal/health"
	"github.com/nadzzz/coachd/internal/observe"
	"github.com/nadzzz/coachd/internal/transport"
	grpctransport "github.com/nadzzz/coachd/internal/transport/grpc"
	httptransport "github.com/nadzzz/coachd/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/coachd.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("coachd %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("coachd starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Metrics are exported through the health server's /metrics endpoint.
	provider, err := observe.InitProvider(observe.ProviderConfig{ServiceName: "coachd", ServiceVersion: version})
	if err != nil {
		slog.Error("failed to initialise metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()
	metrics := observe.DefaultMetrics()

	// Build the engine. Without a real credential everything runs locally.
	eng, completer := engine.Build(cfg.Completion, metrics)
	if completer != nil {
		defer completer.Close()
		slog.Info("using completion service",
			"backend", completer.Name(),
			"model", cfg.Completion.Model,
			"keyword_model", cfg.Completion.KeywordModel)
	} else {
		slog.Info("no completion credential configured, using local mode")
	}

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port, metrics))
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort, provider.Handler)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, eng); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("coachd ready",
		"transports", len(transports),
		"mode", eng.Mode(),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")
	healthServer.SetReady(false)

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("coachd stopped")
}
