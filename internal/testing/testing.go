// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/roastify/roastify/internal/services"
)

// StubMusicService is a test double for [services.MusicService] returning a
// canned profile or error.
type StubMusicService struct {
	Profile *services.MusicProfile
	Err     error
	Calls   int
}

func (s *StubMusicService) FetchProfile(ctx context.Context, accessToken string) (*services.MusicProfile, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Profile, nil
}

func (s *StubMusicService) Name() string { return "stub" }

// StubCompleter is a test double for [services.Completer] that records the
// prompts it was called with.
type StubCompleter struct {
	Response      string
	Err           error
	Calls         int
	SystemPrompts []string
	UserPrompts   []string
}

func (s *StubCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.Calls++
	s.SystemPrompts = append(s.SystemPrompts, systemPrompt)
	s.UserPrompts = append(s.UserPrompts, userPrompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

func (s *StubCompleter) Model() string { return "stub-model" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
