package sessions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roastify/roastify/internal/shared"
)

// DefaultCookieName is the session cookie name when none is configured.
const DefaultCookieName = "roastify_session"

// CookieCodec signs and verifies the session cookie.
//
// The cookie value is an HS256 JWT whose subject is the opaque session ID; the
// token record itself never leaves the server. A cookie with a bad signature,
// wrong algorithm, or expired claim is treated as absent.
type CookieCodec struct {
	secret []byte
	name   string
	ttl    time.Duration
}

// NewCookieCodec creates a codec signing with the given secret key.
// Name and ttl fall back to [DefaultCookieName] and 24 hours.
func NewCookieCodec(secret, name string, ttl time.Duration) (*CookieCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: session secret key is required", shared.ErrMissingCredentials)
	}
	if name == "" {
		name = DefaultCookieName
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CookieCodec{secret: []byte(secret), name: name, ttl: ttl}, nil
}

// Issue returns a signed session cookie carrying the session ID.
func (c *CookieCodec) Issue(sessionID string) (*http.Cookie, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     c.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Read extracts and verifies the session ID from the request's cookie.
// Returns ("", false) when the cookie is missing or invalid.
func (c *CookieCodec) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// Clear returns an expired cookie that removes the session cookie from the browser.
func (c *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
