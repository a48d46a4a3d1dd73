// Package main provides the backnav replay runner for CI. It replays YAML
// scripts of back presses, gestures and escape keys against the arbiter and
// fails when any step's expectation is not met.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/entrhq/backnav/pkg/executor/headless"
	"github.com/entrhq/backnav/pkg/logging"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Scripts     []string
	OutputDir   string
	Verbosity   string
	Timeout     time.Duration
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("backnav-replay v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Printf("Replay failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags. Scripts may be given with -script
// or as positional arguments.
func parseFlags() *CLIConfig {
	config := &CLIConfig{}
	var script string

	flag.StringVar(&script, "script", "", "Path to replay script (YAML)")
	flag.StringVar(&config.OutputDir, "output", "", "Directory for replay.json and summary.md (optional)")
	flag.StringVar(&config.Verbosity, "verbosity", "normal", "Output verbosity: quiet, normal, verbose, debug")
	flag.DurationVar(&config.Timeout, "timeout", time.Minute, "Timeout for all scripts together")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "backnav-replay - Scripted back press replay for CI\n\n")
		fmt.Fprintf(os.Stderr, "Usage: backnav-replay [options] [script.yaml ...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Replay one script\n")
		fmt.Fprintf(os.Stderr, "  backnav-replay -script examples/scripts/sheet.yaml\n\n")
		fmt.Fprintf(os.Stderr, "  # Replay a directory of scripts and keep artifacts\n")
		fmt.Fprintf(os.Stderr, "  backnav-replay -output out examples/scripts/*.yaml\n\n")
	}

	flag.Parse()

	if script != "" {
		config.Scripts = append(config.Scripts, script)
	}
	config.Scripts = append(config.Scripts, flag.Args()...)
	return config
}

// run replays every script and returns an error if any of them failed
func run(ctx context.Context, cliConfig *CLIConfig) error {
	if len(cliConfig.Scripts) == 0 {
		return fmt.Errorf("no replay script given (use -script or pass paths as arguments)")
	}

	level, err := headless.ParseLogLevel(cliConfig.Verbosity)
	if err != nil {
		return err
	}
	console := headless.NewLogger(level)

	if cliConfig.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliConfig.Timeout)
		defer cancel()
	}

	var failed []string
	for _, path := range cliConfig.Scripts {
		ok, runErr := replay(ctx, path, cliConfig, console)
		if runErr != nil {
			console.Errorf("%s: %v", path, runErr)
		}
		if !ok {
			failed = append(failed, path)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d script(s) failed: %s", len(failed), len(cliConfig.Scripts), strings.Join(failed, ", "))
	}
	return nil
}

// replay runs one script and reports whether it succeeded
func replay(ctx context.Context, path string, cliConfig *CLIConfig, console *headless.Logger) (bool, error) {
	script, err := headless.LoadScript(path)
	if err != nil {
		return false, err
	}

	opts := []headless.Option{
		headless.WithConsole(console),
		headless.WithManagerLogger(logging.NewWriterLogger("arbiter", os.Stderr, managerLevel(console.Level()))),
	}
	if cliConfig.OutputDir != "" {
		dir := cliConfig.OutputDir
		if len(cliConfig.Scripts) > 1 {
			dir = filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		}
		opts = append(opts, headless.WithArtifacts(dir))
	}

	executor, err := headless.NewExecutor(script, opts...)
	if err != nil {
		return false, err
	}

	summary, err := executor.Run(ctx)
	if err != nil {
		return false, err
	}
	return summary.Succeeded(), nil
}

// managerLevel maps console verbosity onto the arbiter's own log level so
// dispatch traces only appear in debug runs.
func managerLevel(level headless.LogLevel) logging.Level {
	switch level {
	case headless.LogLevelDebug:
		return logging.LevelDebug
	case headless.LogLevelVerbose:
		return logging.LevelInfo
	default:
		return logging.LevelWarn
	}
}
