// Clausewised is the clausewise compliance daemon.
//
// It serves contract compliance analysis, the clause template library, and
// clause suggestion generation over HTTP.
//
// Configuration is loaded from a YAML file and environment variables. See
// internal/config for details.
//
// Usage:
//
//	# Start server with defaults
//	clausewised
//
//	# Configure via environment
//	SERVER_PORT=9090 LOGGING_LEVEL=debug clausewised
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clausewise/internal/clause"
	"github.com/fyrsmithlabs/clausewise/internal/compliance"
	"github.com/fyrsmithlabs/clausewise/internal/config"
	httpserver "github.com/fyrsmithlabs/clausewise/internal/http"
	"github.com/fyrsmithlabs/clausewise/internal/logging"
	"github.com/fyrsmithlabs/clausewise/internal/suggest"
	"github.com/fyrsmithlabs/clausewise/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/clausewise/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  clausewised           Start the clausewise daemon\n")
			fmt.Fprintf(os.Stderr, "  clausewised version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("clausewised by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the clausewise server and blocks until the context is cancelled.
//
// Initialization order:
//  1. Load and validate configuration
//  2. Initialize logger and telemetry
//  3. Build the rule corpus (built-ins plus optional overlay file)
//  4. Initialize business services (compliance, clause, suggest)
//  5. Start HTTP server
//  6. Graceful shutdown on context cancellation
func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("Starting clausewised",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("service", cfg.Telemetry.ServiceName),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()))

	tel, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:               cfg.Telemetry.Enabled,
		Endpoint:              cfg.Telemetry.Endpoint,
		Insecure:              cfg.Telemetry.Insecure,
		ServiceName:           cfg.Telemetry.ServiceName,
		ServiceVersion:        version,
		SamplingRate:          cfg.Telemetry.SamplingRate,
		MetricsEnabled:        cfg.Telemetry.MetricsEnabled,
		ExportIntervalSeconds: int(cfg.Telemetry.ExportInterval.Duration().Seconds()),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	if tel.Degraded() {
		logger.Warn("Telemetry degraded to no-op providers")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown error", zap.Error(err))
		}
	}()

	corpus, err := buildCorpus(cfg)
	if err != nil {
		return fmt.Errorf("failed to build rule corpus: %w", err)
	}

	logger.Info("Rule corpus loaded",
		zap.Int("rules", corpus.Len()),
		zap.Bool("overlay", cfg.Rules.OverlayPath != ""))

	analyzer, err := compliance.NewService(corpus, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize compliance service: %w", err)
	}

	repo := clause.NewMemoryRepository()
	clauseSvc, err := clause.NewService(repo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize clause service: %w", err)
	}

	generator, err := suggest.NewGenerator(repo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize suggestion generator: %w", err)
	}

	srv, err := httpserver.NewServer(analyzer, clauseSvc, generator, logger, &httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		Thresholds: httpserver.RiskThresholds{
			Low:    cfg.Thresholds.Low,
			Medium: cfg.Thresholds.Medium,
			High:   cfg.Thresholds.High,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

// buildCorpus loads the built-in rule corpus and merges the optional overlay
// file from configuration.
func buildCorpus(cfg *config.Config) (*compliance.RuleCorpus, error) {
	corpus, err := compliance.DefaultCorpus()
	if err != nil {
		return nil, err
	}

	if cfg.Rules.OverlayPath == "" {
		return corpus, nil
	}

	data, err := os.ReadFile(cfg.Rules.OverlayPath)
	if err != nil {
		return nil, fmt.Errorf("reading rules overlay %s: %w", cfg.Rules.OverlayPath, err)
	}
	rules, err := compliance.ParseRulesYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing rules overlay %s: %w", cfg.Rules.OverlayPath, err)
	}
	return corpus.WithRules(rules...)
}
