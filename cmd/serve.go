package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/roastify/roastify/internal/server"
	"github.com/roastify/roastify/internal/services"
	"github.com/roastify/roastify/internal/sessions"
	"github.com/roastify/roastify/internal/shared"
	"github.com/roastify/roastify/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Serve runs the HTTP gateway until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = int(port)
	}

	if err := config.ValidateServe(); err != nil {
		return err
	}

	spotify, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	store, err := r.openSessionStore(config)
	if err != nil {
		return err
	}

	codec, err := sessions.NewCookieCodec(config.Session.SecretKey, config.Session.CookieName, config.Session.TTL())
	if err != nil {
		return err
	}

	handler := server.NewAPIHandler(server.APIHandlerOpts{
		Tokens:  services.NewTokenManager(spotify, store, r.logger),
		Music:   spotify,
		Engine:  r.buildRoastEngine(config),
		Cookies: codec,
		Logger:  r.logger,
	})

	router := server.NewBasicRouter()
	router.Use(server.Logging(shared.WithLogger(r.logger, "component", "http")))
	if config.Server.RateLimit > 0 {
		limiter := rate.NewLimiter(rate.Limit(config.Server.RateLimit), config.Server.RateBurst)
		router.Use(server.RateLimit(limiter))
	}
	router.Handler(handler)

	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("roast gateway listening at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		r.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	return nil
}

// openSessionStore selects the session store backend: SQLite when a database
// path is configured, in-memory otherwise.
func (r *Runner) openSessionStore(config *shared.Config) (sessions.Store, error) {
	if config.Session.DBPath == "" {
		r.logger.Info("using in-memory session store")
		return sessions.NewMemoryStore(), nil
	}

	store, err := sessions.OpenSQLiteStore(config.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	r.logger.Info("using SQLite session store", "path", config.Session.DBPath)
	return store, nil
}

// buildRoastEngine constructs the completion pipeline, or returns nil when the
// Groq client cannot initialize. The gateway still serves the auth flow; /roast
// answers 503 until a key is supplied.
func (r *Runner) buildRoastEngine(config *shared.Config) *tasks.RoastEngine {
	groq, err := services.NewGroqService(config.Credentials.Groq.APIKey, config.Credentials.Groq.Model)
	if err != nil {
		r.logger.Error("error initializing completion client", "error", err)
		return nil
	}
	return tasks.NewRoastEngine(groq)
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the roast gateway HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured listen port",
			},
		},
		Action: r.Serve,
	}
}
