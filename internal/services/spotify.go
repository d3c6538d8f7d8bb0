// Spotify API implementation of [OAuthService] and [MusicService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/roastify/roastify/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// Time ranges accepted by Spotify's top-items endpoints.
const (
	RangeShortTerm  = "short_term"
	RangeMediumTerm = "medium_term"
	RangeLongTerm   = "long_term"
)

const topItemLimit = 20

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	URI    string   `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// SpotifyTopTracks represents a paginated response from /me/top/tracks.
type SpotifyTopTracks struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
	Limit int            `json:"limit"`
}

// SpotifyTopArtists represents a paginated response from /me/top/artists.
type SpotifyTopArtists struct {
	Items []SpotifyArtist `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

// SpotifyService implements [OAuthService] and [MusicService] for the Spotify Web API.
// Uses [oauth2] for the authorization-code and refresh-token exchanges.
type SpotifyService struct {
	config     *oauth2.Config
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/api/v1/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-top-read",
			"playlist-read-private",
			"user-library-read",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
//
// show_dialog forces the consent screen on every login instead of silently
// reusing a prior grant.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// GetOAuthConfig returns the underlying OAuth2 configuration.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// Exchange trades an authorization code for tokens.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthExchangeFailed, err)
	}
	return token, nil
}

// Refresh obtains a new access token using the given refresh token.
//
// Spotify may omit a new refresh token from the response; callers that store
// tokens must keep the old one in that case.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token available", shared.ErrRefreshFailed)
	}

	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("%w: provider returned an empty token", shared.ErrRefreshFailed)
	}

	return token, nil
}

// doRequest performs an authenticated GET request to the Spotify API and decodes the JSON response.
func (s *SpotifyService) doRequest(ctx context.Context, accessToken, endpoint string, result any) error {
	if accessToken == "" {
		return fmt.Errorf("%w: missing access token", shared.ErrNotAuthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify API error: status %d: %s", resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// TopTracks retrieves the user's top tracks for the given time range.
func (s *SpotifyService) TopTracks(ctx context.Context, accessToken string, limit int, timeRange string) (*SpotifyTopTracks, error) {
	endpoint := "/me/top/tracks?" + topItemsQuery(limit, timeRange)

	var response SpotifyTopTracks
	if err := s.doRequest(ctx, accessToken, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// TopArtists retrieves the user's top artists for the given time range.
func (s *SpotifyService) TopArtists(ctx context.Context, accessToken string, limit int, timeRange string) (*SpotifyTopArtists, error) {
	endpoint := "/me/top/artists?" + topItemsQuery(limit, timeRange)

	var response SpotifyTopArtists
	if err := s.doRequest(ctx, accessToken, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

func topItemsQuery(limit int, timeRange string) string {
	if limit <= 0 || limit > 50 {
		limit = topItemLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("time_range", timeRange)
	return q.Encode()
}

// FetchProfile retrieves the user's listening profile: top tracks over the
// short term, top artists over the medium term, and the union of artist genres.
//
// A profile with zero tracks and zero artists is not an error; callers decide
// how to treat the empty state.
func (s *SpotifyService) FetchProfile(ctx context.Context, accessToken string) (*MusicProfile, error) {
	tracks, err := s.TopTracks(ctx, accessToken, topItemLimit, RangeShortTerm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProfileFetchFailed, err)
	}

	artists, err := s.TopArtists(ctx, accessToken, topItemLimit, RangeMediumTerm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProfileFetchFailed, err)
	}

	profile := &MusicProfile{}
	for _, track := range tracks.Items {
		profile.TopTracks = append(profile.TopTracks, track.Name)
	}

	seen := map[string]bool{}
	for _, artist := range artists.Items {
		profile.TopArtists = append(profile.TopArtists, artist.Name)
		for _, genre := range artist.Genres {
			if !seen[genre] {
				seen[genre] = true
				profile.Genres = append(profile.Genres, genre)
			}
		}
	}

	return profile, nil
}
