package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/roastify/roastify/internal/shared"
)

func testCredentials() map[string]string {
	return map[string]string{
		"client_id":     "test-client-id",
		"client_secret": "test-client-secret",
		"redirect_uri":  "http://localhost:8080/api/v1/callback",
	}
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		service, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if service.Name() != "Spotify" {
			t.Errorf("unexpected name: %s", service.Name())
		}
	})

	t.Run("missing client_id", func(t *testing.T) {
		creds := testCredentials()
		delete(creds, "client_id")

		if _, err := NewSpotifyService(creds); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("missing client_secret", func(t *testing.T) {
		creds := testCredentials()
		creds["client_secret"] = ""

		if _, err := NewSpotifyService(creds); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("default redirect uri", func(t *testing.T) {
		creds := testCredentials()
		delete(creds, "redirect_uri")

		service, err := NewSpotifyService(creds)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if service.config.RedirectURL != "http://localhost:8080/api/v1/callback" {
			t.Errorf("unexpected redirect: %s", service.config.RedirectURL)
		}
	})
}

func TestGetAuthURL(t *testing.T) {
	service, _ := NewSpotifyService(testCredentials())

	raw := service.GetAuthURL("state-token")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("expected parseable URL, got %v", err)
	}

	q := parsed.Query()
	if q.Get("state") != "state-token" {
		t.Errorf("expected state param, got %s", q.Get("state"))
	}
	if q.Get("show_dialog") != "true" {
		t.Errorf("expected show_dialog=true, got %s", q.Get("show_dialog"))
	}
	if q.Get("client_id") != "test-client-id" {
		t.Errorf("unexpected client_id: %s", q.Get("client_id"))
	}

	scope := q.Get("scope")
	for _, want := range []string{"user-top-read", "playlist-read-private", "user-library-read"} {
		if !strings.Contains(scope, want) {
			t.Errorf("expected scope to include %s, got %s", want, scope)
		}
	}
}

func TestRefresh(t *testing.T) {
	service, _ := NewSpotifyService(testCredentials())

	t.Run("empty refresh token", func(t *testing.T) {
		if _, err := service.Refresh(context.Background(), ""); !errors.Is(err, shared.ErrRefreshFailed) {
			t.Errorf("expected ErrRefreshFailed, got %v", err)
		}
	})
}

func TestFetchProfile(t *testing.T) {
	tracksJSON := `{
		"items": [
			{"id": "t1", "name": "Track One", "artists": [{"id": "a1", "name": "Artist One"}]},
			{"id": "t2", "name": "Track Two", "artists": [{"id": "a2", "name": "Artist Two"}]}
		],
		"total": 2, "limit": 20
	}`
	artistsJSON := `{
		"items": [
			{"id": "a1", "name": "Artist One", "genres": ["indie rock", "shoegaze"]},
			{"id": "a2", "name": "Artist Two", "genres": ["shoegaze", "dream pop"]}
		],
		"total": 2, "limit": 20
	}`

	t.Run("success", func(t *testing.T) {
		var gotPaths []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPaths = append(gotPaths, r.URL.Path+"?"+r.URL.RawQuery)
			if r.Header.Get("Authorization") != "Bearer access-token" {
				t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
			}

			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/me/top/tracks":
				w.Write([]byte(tracksJSON))
			case "/me/top/artists":
				w.Write([]byte(artistsJSON))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		service, _ := NewSpotifyService(testCredentials())
		service.baseURL = server.URL

		profile, err := service.FetchProfile(context.Background(), "access-token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(profile.TopTracks, []string{"Track One", "Track Two"}) {
			t.Errorf("unexpected tracks: %v", profile.TopTracks)
		}
		if !reflect.DeepEqual(profile.TopArtists, []string{"Artist One", "Artist Two"}) {
			t.Errorf("unexpected artists: %v", profile.TopArtists)
		}
		// Genres are deduplicated in the order they first appear.
		if !reflect.DeepEqual(profile.Genres, []string{"indie rock", "shoegaze", "dream pop"}) {
			t.Errorf("unexpected genres: %v", profile.Genres)
		}

		if len(gotPaths) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(gotPaths))
		}
		if !strings.Contains(gotPaths[0], "time_range=short_term") {
			t.Errorf("expected short_term tracks request, got %s", gotPaths[0])
		}
		if !strings.Contains(gotPaths[1], "time_range=medium_term") {
			t.Errorf("expected medium_term artists request, got %s", gotPaths[1])
		}
	})

	t.Run("empty profile is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items": [], "total": 0, "limit": 20}`))
		}))
		defer server.Close()

		service, _ := NewSpotifyService(testCredentials())
		service.baseURL = server.URL

		profile, err := service.FetchProfile(context.Background(), "access-token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !profile.Empty() {
			t.Errorf("expected empty profile, got %+v", profile)
		}
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": {"status": 401, "message": "The access token expired"}}`))
		}))
		defer server.Close()

		service, _ := NewSpotifyService(testCredentials())
		service.baseURL = server.URL

		if _, err := service.FetchProfile(context.Background(), "stale-token"); !errors.Is(err, shared.ErrProfileFetchFailed) {
			t.Errorf("expected ErrProfileFetchFailed, got %v", err)
		}
	})

	t.Run("missing access token", func(t *testing.T) {
		service, _ := NewSpotifyService(testCredentials())

		if _, err := service.FetchProfile(context.Background(), ""); !errors.Is(err, shared.ErrProfileFetchFailed) {
			t.Errorf("expected ErrProfileFetchFailed, got %v", err)
		}
	})
}

func TestTopItemsQuery(t *testing.T) {
	t.Run("explicit limit", func(t *testing.T) {
		q, _ := url.ParseQuery(topItemsQuery(10, RangeLongTerm))
		if q.Get("limit") != "10" || q.Get("time_range") != RangeLongTerm {
			t.Errorf("unexpected query: %v", q)
		}
	})

	t.Run("out of range limit falls back", func(t *testing.T) {
		q, _ := url.ParseQuery(topItemsQuery(999, RangeShortTerm))
		if q.Get("limit") != "20" {
			t.Errorf("expected fallback limit 20, got %s", q.Get("limit"))
		}
	})
}
