package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/roastify/roastify/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	// .env is a development convenience; real deployments set env vars directly.
	_ = godotenv.Load()

	logger := shared.NewLogger(nil)
	if os.Getenv("DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}
	config := shared.LoadOrDefault("config.toml")

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "roastify",
		Usage:    "Get your Spotify listening habits roasted by an LLM",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
