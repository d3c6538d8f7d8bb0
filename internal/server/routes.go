package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/roastify/roastify/internal/services"
	"github.com/roastify/roastify/internal/sessions"
	"github.com/roastify/roastify/internal/shared"
	"github.com/roastify/roastify/internal/tasks"
)

// API route paths. The gateway serves everything under a versioned prefix.
const (
	APIPrefix    = "/api/v1"
	routeIndex   = APIPrefix + "/"
	routeLogin   = APIPrefix + "/login"
	routeLogout  = APIPrefix + "/logout"
	routeCallbck = APIPrefix + "/callback"
	routeRoastMe = APIPrefix + "/roastme"
	routeRoast   = APIPrefix + "/roast"
)

// APIHandler serves the roast gateway API.
//
// Session authentication has two states. Unauthenticated: no token record for
// the session, or the record is expired and unrefreshable. Authenticated: a
// valid or refreshable record exists. /callback is the only transition into
// Authenticated; /logout and a failed refresh transition out.
type APIHandler struct {
	tokens  *services.TokenManager
	music   services.MusicService
	engine  *tasks.RoastEngine
	cookies *sessions.CookieCodec
	logger  *log.Logger
}

// APIHandlerOpts contains the dependencies for an [APIHandler].
//
// Engine may be nil when the completion client failed to initialize at
// startup; /roast then answers 503 while the rest of the API keeps working.
type APIHandlerOpts struct {
	Tokens  *services.TokenManager
	Music   services.MusicService
	Engine  *tasks.RoastEngine
	Cookies *sessions.CookieCodec
	Logger  *log.Logger
}

// NewAPIHandler creates the gateway's API handler.
func NewAPIHandler(opts APIHandlerOpts) *APIHandler {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &APIHandler{
		tokens:  opts.Tokens,
		music:   opts.Music,
		engine:  opts.Engine,
		cookies: opts.Cookies,
		logger:  opts.Logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{routeIndex}
}

// ServeHTTP dispatches requests to the endpoint handlers. All endpoints are GET.
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	switch r.URL.Path {
	case routeIndex:
		h.Index(w, r)
	case routeLogin:
		h.Login(w, r)
	case routeLogout:
		h.Logout(w, r)
	case routeCallbck:
		h.Callback(w, r)
	case routeRoastMe:
		h.RoastMe(w, r)
	case routeRoast:
		h.Roast(w, r)
	default:
		h.writeError(w, http.StatusNotFound, "Not found.")
	}
}

// Index reports that the API is running.
func (h *APIHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Go to /login to authenticate."})
}

// Login redirects the user to Spotify for authentication.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		h.logger.Error("failed to generate state token", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Could not start login.")
		return
	}

	http.Redirect(w, r, h.tokens.AuthURL(state), http.StatusFound)
}

// Logout clears the session's token record and sends the user back to login.
func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sid, ok := h.cookies.Read(r); ok {
		if err := h.tokens.Clear(sid); err != nil {
			h.logger.Error("failed to clear session", "error", err)
		} else {
			h.logger.Info("user session cleared (logged out)")
		}
	}

	http.SetCookie(w, h.cookies.Clear())
	http.Redirect(w, r, routeLogin, http.StatusFound)
}

// Callback handles the redirect back from Spotify after user authentication.
// Exchanges the code for tokens and stores them in the session.
func (h *APIHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		h.logger.Error("spotify OAuth error", "error", errParam)
		h.writeError(w, http.StatusBadRequest, "Authentication Failed: "+errParam)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.logger.Error("no authorization code received from spotify")
		h.writeError(w, http.StatusBadRequest, "Authentication Failed: No code provided.")
		return
	}

	sid, ok := h.cookies.Read(r)
	if !ok {
		sid = shared.GenerateID()
	}

	if _, err := h.tokens.Exchange(r.Context(), sid, code); err != nil {
		h.logger.Error("error getting access token", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Could not get access token: "+err.Error())
		return
	}

	cookie, err := h.cookies.Issue(sid)
	if err != nil {
		h.logger.Error("failed to issue session cookie", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Could not establish session.")
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, routeRoastMe, http.StatusFound)
}

// RoastMe confirms login and points at the roast endpoint.
//
// Presence of a token record is enough here; expiry is checked (and refresh
// attempted) only when /roast actually needs a usable token.
func (h *APIHandler) RoastMe(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cookies.Read(r)
	if !ok {
		http.Redirect(w, r, routeLogin, http.StatusFound)
		return
	}

	rec, err := h.tokens.Peek(sid)
	if err != nil {
		h.logger.Error("failed to read session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Could not read session.")
		return
	}
	if rec == nil {
		http.Redirect(w, r, routeLogin, http.StatusFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "You are logged in! Make a GET request to /roast to get your music taste roasted.",
	})
}

// Roast fetches the user's music data from Spotify and generates a roast.
func (h *APIHandler) Roast(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Completion client not initialized")
		return
	}

	sid, _ := h.cookies.Read(r)
	rec, err := h.tokens.ValidToken(r.Context(), sid)
	if err != nil {
		h.logger.Error("failed to resolve session token", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Could not read session.")
		return
	}
	if rec == nil {
		h.logger.Error("roast endpoint called without valid authentication")
		http.Redirect(w, r, routeLogin, http.StatusFound)
		return
	}

	profile, err := h.music.FetchProfile(r.Context(), rec.AccessToken)
	if err != nil {
		h.logger.Error("error occurred during roast generation", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to generate roast: "+err.Error())
		return
	}

	result, err := h.engine.Run(r.Context(), profile)
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientData) {
			h.writeError(w, http.StatusNotFound, "Could not find enough music data on Spotify to generate a roast.")
			return
		}
		h.logger.Error("error occurred during roast generation", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to generate roast: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := shared.MarshalJSON(data, false)
	if err != nil {
		h.logger.Error("failed to marshal response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
	w.Write([]byte("\n"))
}

func (h *APIHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}
