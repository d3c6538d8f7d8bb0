// Package services implements clients for the two remote APIs the gateway
// depends on, plus the token lifecycle that glues them to browser sessions.
//
// [SpotifyService] covers both halves of the Spotify integration: the OAuth2
// authorization-code and refresh-token exchanges (via [OAuthService]) and the
// top-tracks/top-artists reads that build a [MusicProfile] (via [MusicService]).
//
// [GroqService] issues single chat-completion calls ([Completer]) with fixed
// parameters; it neither streams nor retries.
//
// [TokenManager] sits between the HTTP layer and the session store: it stores
// tokens after the callback exchange, hands out valid tokens on demand, and
// transparently performs at most one refresh per request. An unrefreshable
// token is deleted so the next request observes an unauthenticated session.
package services
