package sessions

import (
	"time"

	"golang.org/x/oauth2"
)

// expirySkew is subtracted from the recorded expiry when deciding whether a
// token is still usable, matching the early-expiry convention of [oauth2.Token.Valid].
const expirySkew = 10 * time.Second

// TokenRecord holds the OAuth tokens for one authenticated session.
//
// A record present in a store is either currently valid or refreshable via its
// RefreshToken; the token manager deletes records that are neither.
type TokenRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
}

// FromOAuthToken converts an [oauth2.Token] into a TokenRecord.
func FromOAuthToken(token *oauth2.Token) *TokenRecord {
	rec := &TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if !token.Expiry.IsZero() {
		rec.ExpiresAt = token.Expiry.Unix()
	}
	if scope, ok := token.Extra("scope").(string); ok {
		rec.Scope = scope
	}
	return rec
}

// OAuthToken converts the record back into an [oauth2.Token].
func (t *TokenRecord) OAuthToken() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
	}
	if t.ExpiresAt > 0 {
		token.Expiry = time.Unix(t.ExpiresAt, 0)
	}
	return token
}

// ExpiredAt reports whether the access token is expired at the given instant.
// Records without a recorded expiry never expire.
func (t *TokenRecord) ExpiredAt(now time.Time) bool {
	if t.ExpiresAt == 0 {
		return false
	}
	return now.Add(expirySkew).Unix() >= t.ExpiresAt
}

// Expired reports whether the access token is expired now.
func (t *TokenRecord) Expired() bool {
	return t.ExpiredAt(time.Now())
}

// Store is the server-side session store mapping session IDs to token records.
//
// Get returns (nil, nil) when no record exists for the session: absence means
// unauthenticated, not failure. Delete of a missing session is a no-op.
type Store interface {
	Get(sessionID string) (*TokenRecord, error)
	Set(sessionID string, record *TokenRecord) error
	Delete(sessionID string) error
}
