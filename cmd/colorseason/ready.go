package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const readyTimeout = 5 * time.Second

type Readyable interface {
	Ready(context.Context) error
}

type readyCheck struct {
	name string
	Readyable
}

// readiness latches once every dependency has answered; after that /ready
// stops probing upstreams.
type readiness struct {
	mu     sync.Mutex
	passed bool
	checks []readyCheck
}

func (r *readiness) Add(name string, check Readyable) {
	r.checks = append(r.checks, readyCheck{name: name, Readyable: check})
}

func (r *readiness) Ready(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.passed {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	var errs []error
	for _, c := range r.checks {
		if err := c.Ready(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	r.passed = true
	return nil
}

func (r *readiness) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if err := r.Ready(req.Context()); err != nil {
		slog.WarnContext(req.Context(), "not ready", "error", err)
		http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.ErrorContext(req.Context(), "failed to write readiness response", "error", err)
	}
}
