package main

import (
	"context"
	"fmt"
	"time"

	"github.com/roastify/roastify/internal/services"
	"github.com/roastify/roastify/internal/shared"
	"github.com/roastify/roastify/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Roast generates a roast from the terminal using tokens saved by the login command
// (or an access token passed via --token), without going through the web session flow.
func (r *Runner) Roast(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadConfig(configPath)
	useJSON := cmd.Bool("json")

	spotify, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	accessToken, err := r.resolveAccessToken(ctx, cmd, config, configPath, spotify)
	if err != nil {
		return err
	}

	groq, err := services.NewGroqService(config.Credentials.Groq.APIKey, config.Credentials.Groq.Model)
	if err != nil {
		return err
	}

	r.logger.Info("fetching listening profile")
	profile, err := spotify.FetchProfile(ctx, accessToken)
	if err != nil {
		return err
	}

	engine := tasks.NewRoastEngine(groq)
	result, err := engine.Run(ctx, profile)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	return r.writePlain("%s\n", result.Text)
}

// resolveAccessToken prefers an explicit --token flag, then the tokens saved in
// the config file, refreshing (and re-saving) them when expired.
func (r *Runner) resolveAccessToken(ctx context.Context, cmd *cli.Command, config *shared.Config, configPath string, spotify services.OAuthService) (string, error) {
	if token := cmd.String("token"); token != "" {
		return token, nil
	}

	creds := &config.Credentials.Spotify
	if creds.AccessToken == "" {
		return "", fmt.Errorf("%w: run `roastify login` first or pass --token", shared.ErrNotAuthenticated)
	}

	expired := creds.ExpiresAt > 0 && time.Now().Unix() >= creds.ExpiresAt
	if !expired {
		return creds.AccessToken, nil
	}

	r.logger.Info("saved token expired, refreshing")
	token, err := spotify.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: run `roastify login` again", err)
	}

	if err := creds.Update(token); err != nil {
		return "", err
	}
	if err := shared.SaveConfig(configPath, config); err != nil {
		r.logger.Warn("failed to save refreshed tokens", "error", err)
	}

	return creds.AccessToken, nil
}

func roastCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "roast",
		Usage: "Fetch your top tracks and artists and get roasted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Spotify access token (skips saved credentials)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Roast,
	}
}
