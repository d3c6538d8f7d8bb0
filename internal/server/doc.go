// Package server provides HTTP routing, middleware, and the roast gateway's API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// [Logging] and [RateLimit] provide request logging and a process-wide request cap.
//
// # Gateway API
//
// [APIHandler] serves the versioned API surface under /api/v1: a status root,
// the OAuth login/logout/callback flow, and the roast endpoints. It resolves
// the caller's session from a signed cookie, delegates token lifecycle to
// [services.TokenManager], and sequences profile fetch → prompt build →
// completion for /roast.
//
// # CLI OAuth Callback Handler
//
// [OAuthHandler] implements the one-shot OAuth2 authorization-code callback
// used by the login command: a temporary localhost server handles a single
// callback, validates the state parameter (CSRF protection), exchanges the
// code, and delivers the result through a channel before shutting down.
// It only processes one callback to prevent replay attacks.
package server
