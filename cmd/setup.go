package main

import (
	"context"

	"github.com/roastify/roastify/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to disk.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Created %s\n", path)
	r.writePlain("Fill in your Spotify credentials, Groq API key, and session secret.\n")
	return nil
}

// ConfigShow prints the effective configuration with secrets redacted.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	redacted := *config
	redacted.Credentials.Spotify.ClientSecret = redact(config.Credentials.Spotify.ClientSecret)
	redacted.Credentials.Spotify.AccessToken = redact(config.Credentials.Spotify.AccessToken)
	redacted.Credentials.Spotify.RefreshToken = redact(config.Credentials.Spotify.RefreshToken)
	redacted.Credentials.Groq.APIKey = redact(config.Credentials.Groq.APIKey)
	redacted.Session.SecretKey = redact(config.Session.SecretKey)

	return r.writeJSON(redacted, true)
}

func redact(value string) string {
	if value == "" {
		return ""
	}
	return "********"
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a config.toml from the embedded example",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration (secrets redacted)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}
