package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/diet-insights/api"
	"github.com/gcbaptista/diet-insights/config"
	"github.com/gcbaptista/diet-insights/internal/analytics"
	"github.com/gcbaptista/diet-insights/internal/charts"
	"github.com/gcbaptista/diet-insights/internal/dataset"
	"github.com/gcbaptista/diet-insights/internal/logger"
	"github.com/gcbaptista/diet-insights/internal/metrics"
)

const version = "1.0.0"

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML config file")
		port       = flag.Int("port", 0, "Port to run the server on (overrides config)")
		dataFile   = flag.String("data-file", "", "Path to the recipes CSV file (overrides config)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Nutritional Insights API - charts and statistics over a diet recipe dataset\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                              # Serve ./All_Diets.csv on port 8000\n", os.Args[0])
		fmt.Printf("  %s --port 9000                  # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-file /data/diets.csv  # Use another dataset\n", os.Args[0])
		fmt.Printf("  %s --config insights.yaml       # Load settings from YAML\n", os.Args[0])
		return
	}

	if *showVer {
		fmt.Printf("Nutritional Insights API v%s\n", version)
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		settings.Server.Port = *port
	}
	if *dataFile != "" {
		settings.Dataset.Path = *dataFile
	}
	if problems := settings.Validate(); len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n  - %s\n", strings.Join(problems, "\n  - "))
		os.Exit(1)
	}

	logger.Setup(settings.Logging.Level, settings.Logging.Format)

	if err := run(settings); err != nil {
		slog.Error("Insights API stopped with error", "error", err)
		os.Exit(1)
	}
}

// run loads the dataset, then serves the API and the metrics endpoint until
// SIGINT or SIGTERM
func run(settings *config.Settings) error {
	log := logger.WithComponent("main")

	start := time.Now()
	table, err := dataset.Load(settings.Dataset.Path, settings.Dataset.Columns)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	log.Info("Dataset loaded",
		"path", table.Source(),
		"rows", table.Len(),
		"columns", len(table.Columns()),
		"duration", time.Since(start),
	)

	var m *metrics.Metrics
	if settings.Metrics.Enabled {
		m = metrics.New()
	}

	renderer := charts.NewRenderer(charts.Options{DPI: settings.Charts.DPI})
	service := analytics.NewService(table, renderer, m)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(service, m)

	servers := []*http.Server{{
		Addr:         fmt.Sprintf(":%d", settings.Server.Port),
		Handler:      router,
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
	}}
	if m != nil {
		servers = append(servers, metrics.NewServer(settings.Metrics.Port, m))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			log.Info("Server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down", "timeout", settings.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Insights API stopped")
	return nil
}
