package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewCookieCodec(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		if _, err := NewCookieCodec("", "name", time.Hour); err == nil {
			t.Error("expected error for empty secret")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		codec, err := NewCookieCodec("secret", "", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if codec.name != DefaultCookieName {
			t.Errorf("expected default cookie name, got %s", codec.name)
		}
		if codec.ttl != 24*time.Hour {
			t.Errorf("expected 24h ttl, got %v", codec.ttl)
		}
	})
}

func TestCookieRoundTrip(t *testing.T) {
	codec, err := NewCookieCodec("secret", "test_session", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	cookie, err := codec.Issue("session-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.Value == "session-123" {
		t.Error("expected session ID to be wrapped in a signed token")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	sid, ok := codec.Read(r)
	if !ok {
		t.Fatal("expected cookie to verify")
	}
	if sid != "session-123" {
		t.Errorf("expected session-123, got %s", sid)
	}
}

func TestCookieRejection(t *testing.T) {
	codec, _ := NewCookieCodec("secret", "test_session", time.Hour)

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, ok := codec.Read(r); ok {
			t.Error("expected missing cookie to be rejected")
		}
	})

	t.Run("tampered value", func(t *testing.T) {
		cookie, _ := codec.Issue("session-123")
		cookie.Value += "x"

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookie)

		if _, ok := codec.Read(r); ok {
			t.Error("expected tampered cookie to be rejected")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other, _ := NewCookieCodec("other-secret", "test_session", time.Hour)
		cookie, _ := other.Issue("session-123")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookie)

		if _, ok := codec.Read(r); ok {
			t.Error("expected cookie signed with another key to be rejected")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		short, _ := NewCookieCodec("secret", "test_session", time.Hour)
		short.ttl = -time.Minute
		cookie, _ := short.Issue("session-123")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookie)

		if _, ok := codec.Read(r); ok {
			t.Error("expected expired cookie to be rejected")
		}
	})
}

func TestCookieClear(t *testing.T) {
	codec, _ := NewCookieCodec("secret", "test_session", time.Hour)
	cookie := codec.Clear()

	if cookie.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookie.MaxAge)
	}
	if cookie.Value != "" {
		t.Errorf("expected empty value, got %s", cookie.Value)
	}
}
