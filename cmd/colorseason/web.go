package main

import (
	"colorseason/internal/analysis"
	"colorseason/internal/classifier"
	"colorseason/internal/config"
	"colorseason/internal/form"
	"colorseason/internal/static"
	"colorseason/internal/templates"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type app struct {
	handler    http.Handler
	controller *form.Controller
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	static.Init()
	if err := templates.Init(static.StyleAssetPath); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	client, err := analysis.NewClient(cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis client: %w", err)
	}

	mux := http.NewServeMux()
	static.Register(mux)

	controller := form.NewController(analysis.NewPipeline(client, client))
	controller.Register(mux)

	ready := &readiness{}
	ready.Add("analysis service", client)

	if cfg.AI.Enabled() {
		seasonHandler, err := classifier.New(ctx, cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("failed to create season classifier: %w", err)
		}
		seasonHandler.Register(mux)
		ready.Add("season classifier", seasonHandler)
		slog.Info("season classifier enabled", "provider", cfg.AI.Provider)
	}

	mux.Handle("GET /ready", ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	return &app{
		handler:    WithMiddleware(mux),
		controller: controller,
	}, nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Serving colorseason", "address", cfg.Addr, "color_api", cfg.Analysis.ColorBaseURL)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)
		return gracefulShutdown(server, a.controller.InFlight)
	}
}

// gracefulShutdown stops accepting connections and lets running handlers,
// including in-flight submissions, finish within the budget.
func gracefulShutdown(svr *http.Server, inFlight func() int) error {
	// kubernetes gives 30 seconds
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	slog.Info("Waiting for in-flight submissions to complete", "submissions", inFlight())
	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err, "submissions", inFlight())
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}
	slog.Info("All submissions completed")
	return nil
}
