// Package main is the school-core command line tool.
//
// It checks weekly class routines for teacher clashes and processes
// exam result sheets into GPA, pass/fail and merit lists:
//
//	schoolcore routine -timetable routine.json -reference reference.yaml
//	schoolcore results -input class6.json -input class7.json
//
// Reports are printed to stdout as JSON, logs go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alem-hub/school-core/config"
	"github.com/alem-hub/school-core/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Debug("starting",
		logger.String("app", cfg.App.Name),
		logger.String("version", cfg.App.Version),
		logger.String("env", string(cfg.App.Environment)),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.App.CommandTimeout)
	defer cancel()

	cli := &commandLine{
		cfg:    cfg,
		log:    log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	return cli.run(ctx, args)
}

func setupLogger(cfg *config.Config) *logger.Logger {
	level := logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		level = logger.LevelDebug
	}
	return logger.New(logger.Options{
		Output:    os.Stderr,
		Level:     level,
		AddCaller: cfg.Observability.AddCaller,
	})
}
