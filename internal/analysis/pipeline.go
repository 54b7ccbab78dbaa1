package analysis

import (
	"colorseason/internal/season"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("colorseason/analysis")

type colorAnalyzer interface {
	AnalyzeColor(ctx context.Context, hex string) json.RawMessage
}

type seasonClassifier interface {
	Classify(ctx context.Context, r Request) ([]byte, error)
}

// Colors are the three submitted hex values.
type Colors struct {
	Skin string
	Hair string
	Eyes string
}

// Pipeline runs one submission: analyze each color, classify, parse.
type Pipeline struct {
	analyzer   colorAnalyzer
	classifier seasonClassifier
}

func NewPipeline(analyzer colorAnalyzer, classifier seasonClassifier) *Pipeline {
	return &Pipeline{analyzer: analyzer, classifier: classifier}
}

// Run always produces something to display. Per-color failures have already
// degraded to empty analyses; a failed classification call yields season.Failed.
func (p *Pipeline) Run(ctx context.Context, colors Colors) season.Display {
	ctx, span := tracer.Start(ctx, "analysis.Run")
	defer span.End()

	hexes := []string{
		strings.ToUpper(colors.Skin),
		strings.ToUpper(colors.Hair),
		strings.ToUpper(colors.Eyes),
	}
	span.SetAttributes(attribute.StringSlice("colors", hexes))

	analyses := make([]json.RawMessage, len(hexes))
	g, gctx := errgroup.WithContext(ctx)
	for i, hex := range hexes {
		g.Go(func() error {
			analyses[i] = p.analyzer.AnalyzeColor(gctx, hex)
			return nil
		})
	}
	_ = g.Wait()

	req := Request{
		Skin: Trait{Match: Match{Hex: hexes[0]}, Analysis: analyses[0]},
		Hair: Trait{Match: Match{Hex: hexes[1]}, Analysis: analyses[1]},
		Eyes: Trait{Match: Match{Hex: hexes[2]}, Analysis: analyses[2]},
	}

	body, err := p.classifier.Classify(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "season classification failed", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		return season.Failed()
	}
	if !json.Valid(body) {
		slog.ErrorContext(ctx, "season classification returned invalid JSON", "body", truncate(string(body), 200))
		span.SetStatus(codes.Error, "invalid JSON")
		return season.Failed()
	}

	outcome := season.Parse(body)
	span.SetAttributes(attribute.String("outcome", outcome.Kind.String()))
	slog.InfoContext(ctx, "season analysis complete", "outcome", outcome.Kind.String(), "season", outcome.Result.Season)
	return outcome.Display()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
