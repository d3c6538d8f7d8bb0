package services

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/roastify/roastify/internal/sessions"
	"github.com/roastify/roastify/internal/shared"
)

// TokenManager owns the OAuth token lifecycle for browser sessions: the
// authorization-code exchange, expiry detection, and refresh-on-demand.
//
// The session store is the only state it mutates. A failed refresh clears the
// session's token record entirely, forcing the user back through full login
// instead of looping on a dead token.
type TokenManager struct {
	oauth  OAuthService
	store  sessions.Store
	logger *log.Logger
	now    func() time.Time
}

// NewTokenManager creates a token manager over the given OAuth service and session store.
func NewTokenManager(oauth OAuthService, store sessions.Store, logger *log.Logger) *TokenManager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TokenManager{
		oauth:  oauth,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// AuthURL returns the provider authorization URL for the given state token.
func (m *TokenManager) AuthURL(state string) string {
	return m.oauth.GetAuthURL(state)
}

// Exchange trades an authorization code for a token record and stores it for the session.
func (m *TokenManager) Exchange(ctx context.Context, sessionID, code string) (*sessions.TokenRecord, error) {
	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rec := sessions.FromOAuthToken(token)
	if err := m.store.Set(sessionID, rec); err != nil {
		return nil, err
	}

	m.logger.Info("obtained tokens and stored in session")
	return rec, nil
}

// Peek returns the session's token record without checking expiry or refreshing.
// Returns (nil, nil) when the session has no record.
func (m *TokenManager) Peek(sessionID string) (*sessions.TokenRecord, error) {
	if sessionID == "" {
		return nil, nil
	}
	return m.store.Get(sessionID)
}

// ValidToken returns a usable token record for the session, refreshing once if
// the stored record is expired.
//
// Returns (nil, nil) when the session is unauthenticated: no record stored, or
// the record was expired and the single refresh attempt failed (in which case
// the record is deleted from the store). Only store failures surface as errors.
func (m *TokenManager) ValidToken(ctx context.Context, sessionID string) (*sessions.TokenRecord, error) {
	if sessionID == "" {
		return nil, nil
	}

	rec, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	if !rec.ExpiredAt(m.now()) {
		return rec, nil
	}

	m.logger.Info("token expired, attempting refresh")

	token, err := m.oauth.Refresh(ctx, rec.RefreshToken)
	if err != nil {
		m.logger.Error("failed to refresh token, clearing session", "error", err)
		if delErr := m.store.Delete(sessionID); delErr != nil {
			return nil, delErr
		}
		return nil, nil
	}

	refreshed := sessions.FromOAuthToken(token)
	if refreshed.RefreshToken == "" {
		// Spotify omits the refresh token when it hasn't rotated.
		refreshed.RefreshToken = rec.RefreshToken
	}

	if err := m.store.Set(sessionID, refreshed); err != nil {
		return nil, err
	}

	m.logger.Info("token refreshed successfully")
	return refreshed, nil
}

// Clear removes the session's token record. Clearing an unknown session is a no-op.
func (m *TokenManager) Clear(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(sessionID)
}
