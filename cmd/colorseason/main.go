package main

import (
	"colorseason/internal/analysis"
	"colorseason/internal/config"
	"colorseason/internal/logging"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	var serve bool
	var addr string
	var skin, hair, eyes string
	var help bool

	flag.BoolVar(&serve, "serve", false, "Run HTTP server mode")
	flag.StringVar(&addr, "addr", "", "Address to bind in server mode (default $ADDR or :8080)")
	flag.StringVar(&skin, "skin", "", "Skin color as #RRGGBB")
	flag.StringVar(&hair, "hair", "", "Hair color as #RRGGBB")
	flag.StringVar(&eyes, "eyes", "", "Eye color as #RRGGBB")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	// a missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if addr != "" {
		cfg.Addr = addr
	}

	ctx := context.Background()
	shutdown, err := logging.Setup(ctx, cfg.Telemetry, os.Stdout)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	if serve {
		if err := runServer(ctx, cfg); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if skin == "" || hair == "" || eyes == "" {
		fmt.Println("Error: -skin, -hair and -eyes are required (or use -serve for web mode)")
		showHelp()
		os.Exit(1)
	}

	if err := run(ctx, cfg, analysis.Colors{Skin: skin, Hair: hair, Eyes: eyes}); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
