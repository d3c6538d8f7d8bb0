package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Host != "localhost" {
		t.Errorf("expected host localhost, got %s", config.Server.Host)
	}
	if config.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", config.Server.Port)
	}
	if config.Credentials.Groq.Model != "llama3-8b-8192" {
		t.Errorf("unexpected default model: %s", config.Credentials.Groq.Model)
	}
	if config.Session.CookieName != "roastify_session" {
		t.Errorf("unexpected cookie name: %s", config.Session.CookieName)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"
redirect_uri = "http://localhost:9000/api/v1/callback"

[server]
host = "0.0.0.0"
port = 9000
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Credentials.Spotify.ClientID != "abc" {
			t.Errorf("unexpected client_id: %s", config.Credentials.Spotify.ClientID)
		}
		if config.Server.Addr() != "0.0.0.0:9000" {
			t.Errorf("unexpected addr: %s", config.Server.Addr())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("not [valid toml"), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		config := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
		if config.Server.Port != 8080 {
			t.Errorf("expected default port, got %d", config.Server.Port)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
		t.Setenv("SERVER_PORT", "3000")

		config := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
		if config.Credentials.Spotify.ClientID != "env-id" {
			t.Errorf("expected env client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected env port, got %d", config.Server.Port)
		}
	})

	t.Run("env ignores bad port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "not-a-number")

		config := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
		if config.Server.Port != 8080 {
			t.Errorf("expected default port, got %d", config.Server.Port)
		}
	})
}

func TestValidateServe(t *testing.T) {
	valid := func() *Config {
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "id"
		config.Credentials.Spotify.ClientSecret = "secret"
		config.Session.SecretKey = "app-secret"
		return config
	}

	t.Run("valid", func(t *testing.T) {
		if err := valid().ValidateServe(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing spotify credentials", func(t *testing.T) {
		config := valid()
		config.Credentials.Spotify.ClientSecret = ""

		if err := config.ValidateServe(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("missing secret key", func(t *testing.T) {
		config := valid()
		config.Session.SecretKey = ""

		if err := config.ValidateServe(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("missing groq key is allowed", func(t *testing.T) {
		config := valid()
		config.Credentials.Groq.APIKey = ""

		if err := config.ValidateServe(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	config := DefaultConfig()
	config.Credentials.Spotify.ClientID = "saved-id"
	config.Credentials.Spotify.AccessToken = "saved-token"

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loaded.Credentials.Spotify.ClientID != "saved-id" {
		t.Errorf("unexpected client_id: %s", loaded.Credentials.Spotify.ClientID)
	}
	if loaded.Credentials.Spotify.AccessToken != "saved-token" {
		t.Errorf("unexpected access_token: %s", loaded.Credentials.Spotify.AccessToken)
	}
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when file already exists")
	}
}

func TestSpotifyConfigUpdate(t *testing.T) {
	expiry := time.Now().Add(time.Hour)

	t.Run("stores new tokens", func(t *testing.T) {
		config := SpotifyConfig{RefreshToken: "old-refresh"}
		token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: expiry}

		if err := config.Update(token); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.AccessToken != "access" || config.RefreshToken != "refresh" {
			t.Errorf("unexpected tokens: %s / %s", config.AccessToken, config.RefreshToken)
		}
		if config.ExpiresAt != expiry.Unix() {
			t.Errorf("unexpected expiry: %d", config.ExpiresAt)
		}
	})

	t.Run("keeps refresh token when omitted", func(t *testing.T) {
		config := SpotifyConfig{RefreshToken: "old-refresh"}
		token := &oauth2.Token{AccessToken: "access", Expiry: expiry}

		if err := config.Update(token); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.RefreshToken != "old-refresh" {
			t.Errorf("expected refresh token preserved, got %s", config.RefreshToken)
		}
	})

	t.Run("rejects empty token", func(t *testing.T) {
		var config SpotifyConfig
		if err := config.Update(nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSpotifyConfigMap(t *testing.T) {
	config := SpotifyConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "uri"}
	m := config.Map()

	if m["client_id"] != "id" || m["client_secret"] != "secret" || m["redirect_uri"] != "uri" {
		t.Errorf("unexpected map: %v", m)
	}
}
