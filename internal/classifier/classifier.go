// Package classifier serves POST /analyze-color-season by asking a language
// model to place the three analyzed colors in the 12-season system.
package classifier

import (
	"colorseason/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var ErrBadRequest = errors.New("skin, eyes and hair each need match and analysis objects")

const (
	temperature = 0.2
	maxTokens   = 350
	callTimeout = 60 * time.Second
)

type completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Handler struct {
	model completer
}

// New picks the model backend named by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (*Handler, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewHandler(newOpenAI(cfg)), nil
	case "gemini":
		m, err := newGemini(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return NewHandler(m), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func NewHandler(model completer) *Handler {
	return &Handler{model: model}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze-color-season", h.handleAnalyze)
}

// Ready is a no-op; model reachability is only known per request.
func (h *Handler) Ready(context.Context) error {
	return nil
}

type colorSet struct {
	Match    map[string]any `json:"match"`
	Analysis map[string]any `json:"analysis"`
}

// traits keeps the prompt order stable: skin, eyes, hair.
type traits struct {
	Skin *colorSet `json:"skin"`
	Eyes *colorSet `json:"eyes"`
	Hair *colorSet `json:"hair"`
}

func (t traits) validate() error {
	for _, c := range []*colorSet{t.Skin, t.Eyes, t.Hair} {
		if c == nil || c.Match == nil || c.Analysis == nil {
			return ErrBadRequest
		}
	}
	return nil
}

func decodeTraits(r io.Reader) (traits, error) {
	var t traits
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&t); err != nil {
		return traits{}, fmt.Errorf("decode request: %w", err)
	}
	if err := t.validate(); err != nil {
		return traits{}, err
	}
	return t, nil
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := decodeTraits(r.Body)
	if err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, map[string]any{
			"error":   "invalid request",
			"details": err.Error(),
		})
		return
	}

	raw, err := h.classify(ctx, t)
	if err != nil {
		// reported in the body so the page can show the details
		slog.ErrorContext(ctx, "season analysis failed", "error", err)
		writeJSON(ctx, w, http.StatusOK, map[string]any{
			"error":   "Season analysis failed",
			"details": err.Error(),
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"status":          "success",
		"traits_received": t,
		"raw_output":      raw,
	})
}

func (h *Handler) classify(ctx context.Context, t traits) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	prompt, err := buildPrompt(t)
	if err != nil {
		return "", err
	}
	start := time.Now()
	raw, err := h.model.Complete(ctx, systemMessage, prompt)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "season model responded", "duration", time.Since(start), "chars", len(raw))
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("model returned an empty response")
	}
	return raw, nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to write response", "error", err)
	}
}
