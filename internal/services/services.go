// package services defines interfaces for the external HTTP APIs the gateway talks to
//
// Spotify (OAuth2 + Web API), Groq (chat completions)
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthService is implemented by providers that authenticate users via the
// OAuth2 authorization-code flow.
type OAuthService interface {
	// GetAuthURL returns the provider authorization URL for the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 configuration (used by the
	// CLI callback handler).
	GetOAuthConfig() *oauth2.Config

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Refresh obtains a new access token using a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// MusicService retrieves a user's listening profile from a streaming provider.
type MusicService interface {
	// FetchProfile retrieves top tracks, top artists, and derived genres for
	// the user the access token belongs to.
	FetchProfile(ctx context.Context, accessToken string) (*MusicProfile, error)

	// Name returns the name of the provider (e.g. "Spotify")
	Name() string
}

// Completer issues a single chat-completion request to a language-model API.
type Completer interface {
	// Complete sends one system + one user message and returns the generated text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Model returns the model identifier used for completions.
	Model() string
}

// MusicProfile is the per-request summary of a user's listening habits.
//
// TopTracks and TopArtists preserve provider order. Genres is the union of all
// artist genre tags, deduplicated, in first-seen order so prompt assembly is
// deterministic within a request.
type MusicProfile struct {
	TopTracks  []string
	TopArtists []string
	Genres     []string
}

// Empty reports whether the provider returned no tracks and no artists.
func (p *MusicProfile) Empty() bool {
	return len(p.TopTracks) == 0 && len(p.TopArtists) == 0
}
