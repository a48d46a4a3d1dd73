// Package main provides the backnav interactive demo: a terminal browser
// whose features compete for the back key through the back press arbiter.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	appconfig "github.com/entrhq/backnav/pkg/config"
	"github.com/entrhq/backnav/pkg/executor/tui"
	"github.com/entrhq/backnav/pkg/logging"
	"github.com/entrhq/backnav/pkg/metrics"
)

const (
	version          = "0.1.0" // Version of backnav
	metricsNamespace = "backnav"
	maxMetricsConns  = 16 // Concurrent scrapes allowed on the metrics listener
)

// Config holds the application configuration
type Config struct {
	ConfigPath  string
	MetricsAddr string
	Legacy      bool
	LogLevel    string
	InitConfig  bool
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("backnav v%s\n", version)
		return
	}

	if err := config.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.ConfigPath, "config", os.Getenv("BACKNAV_CONFIG"), "Path to config file (default: ~/.backnav/config.yaml)")
	flag.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.BoolVar(&config.Legacy, "legacy", false, "Use the legacy back callback instead of predictive gestures")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Session log level: debug, info, warn, error")
	flag.BoolVar(&config.InitConfig, "init-config", false, "Write the effective configuration to the config file and exit")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "backnav - Back press arbiter demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: backnav [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  BACKNAV_CONFIG     Config file path\n")
		fmt.Fprintf(os.Stderr, "  BACKNAV_LOG_DIR    Session log directory\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  backnav                          # Predictive back demo\n")
		fmt.Fprintf(os.Stderr, "  backnav -legacy                  # Discrete back presses only\n")
		fmt.Fprintf(os.Stderr, "  backnav -metrics-addr :9090      # Expose dispatch counters\n")
		fmt.Fprintf(os.Stderr, "  backnav -init-config             # Write defaults to ~/.backnav/config.yaml\n")
	}

	flag.Parse()
	return config
}

// validate checks that the configuration is valid
func (c *Config) validate() error {
	_, err := logging.ParseLevel(c.LogLevel)
	return err
}

// run executes the main application logic
func run(ctx context.Context, config *Config) error {
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if config.InitConfig {
		manager := appconfig.Global()
		if err := manager.SaveAll(); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		if fs, ok := manager.Store().(*appconfig.FileStore); ok {
			fmt.Printf("Configuration written to %s\n", fs.Path())
		}
		return nil
	}

	level, _ := logging.ParseLevel(config.LogLevel)
	logger, err := logging.NewLogger("arbiter")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()
	logger.SetLevel(level)
	logger.Infof("backnav v%s starting (session %s)", version, logger.SessionID())

	arbiter := appconfig.GetArbiter()
	if config.Legacy {
		arbiter.SetPredictiveBack(false)
	}

	collector := metrics.NewCollector(metricsNamespace)
	if config.MetricsAddr != "" {
		_, stop, serveErr := startMetricsServer(config.MetricsAddr, collector, logger.With("metrics"))
		if serveErr != nil {
			return serveErr
		}
		defer stop()
	}

	executor := tui.NewExecutor(tui.Options{
		Arbiter:  arbiter,
		Keys:     appconfig.GetKeys(),
		Recorder: collector,
		Logger:   logger,
	})
	return executor.Run(ctx)
}
