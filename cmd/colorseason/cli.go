package main

import (
	"colorseason/internal/analysis"
	"colorseason/internal/config"
	"colorseason/internal/hexcolor"
	"colorseason/internal/season"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

func run(ctx context.Context, cfg *config.Config, colors analysis.Colors) error {
	for name, c := range map[string]string{"skin": colors.Skin, "hair": colors.Hair, "eyes": colors.Eyes} {
		if !hexcolor.Valid(c) {
			return fmt.Errorf("%s color %q must be #RRGGBB", name, c)
		}
	}

	client, err := analysis.NewClient(cfg.Analysis)
	if err != nil {
		return fmt.Errorf("failed to create analysis client: %w", err)
	}
	d := analysis.NewPipeline(client, client).Run(ctx, colors)
	printDisplay(os.Stdout, d)
	if d.IsError() {
		return errors.New("analysis did not produce a season")
	}
	return nil
}

func printDisplay(w io.Writer, d season.Display) {
	fmt.Fprintf(w, "[%s] %s\n", d.Badge, d.Title)
	if d.Trait != "" {
		fmt.Fprintf(w, "Dominant trait: %s\n", d.Trait)
	}
	if d.Reasoning != "" {
		fmt.Fprintln(w, d.Reasoning)
	}
}

func showHelp() {
	fmt.Println("colorseason - personal color season analysis")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  colorseason -serve [-addr :8080]")
	fmt.Println("  colorseason -skin '#E0AC69' -hair '#3B2F2F' -eyes '#5D8AA8'")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -serve          Run the web form")
	fmt.Println("  -addr           Address to bind in server mode")
	fmt.Println("  -skin, -hair, -eyes   Colors to analyze once and print")
	fmt.Println("  -help, -h       Show this help message")
	fmt.Println()
	fmt.Println("Environment: COLOR_API_URL, SEASON_API_URL, ANALYSIS_TIMEOUT, AI_PROVIDER, AI_API_KEY, AI_MODEL")
}
