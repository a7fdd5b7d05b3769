package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giygas/lactancia-api/config"
	"github.com/giygas/lactancia-api/handlers"
	"github.com/giygas/lactancia-api/health"
	"github.com/giygas/lactancia-api/logging"
	"github.com/giygas/lactancia-api/lookup"
	"github.com/giygas/lactancia-api/scheduler"
	"github.com/giygas/lactancia-api/server"
	"github.com/giygas/lactancia-api/validation"
)

func main() {
	// A missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Options{
		Dir:            "logs",
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	slog.Info("Configuration loaded",
		"env", cfg.Env.String(),
		"address", cfg.Address,
		"port", cfg.Port,
		"proxy", cfg.ProxyURL != "",
		"translation", cfg.TranslationEnabled)

	svc, client, err := lookup.NewFromConfig(cfg)
	if err != nil {
		slog.Error("Failed to build lookup service", "error", err)
		os.Exit(1)
	}

	upstream := health.NewUpstreamStatus()
	probeInterval := time.Duration(cfg.ProbeInterval) * time.Minute

	sched := scheduler.NewScheduler(client, upstream, probeInterval)
	if err := sched.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	httpHandler := handlers.NewHTTPHandler(
		svc,
		validation.NewInputValidator(),
		health.NewHealthChecker(svc.Cache(), upstream, probeInterval),
	)
	srv := server.NewServer(cfg, httpHandler)

	if cfg.Env == config.EnvDevelopment {
		go func() {
			slog.Info("Profiling server started at http://localhost:6060/debug/pprof/")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				slog.Error("Profiling server failed", "error", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("Signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
