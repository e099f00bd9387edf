// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nicocal/internal/platform/constants"
	requestutil "github.com/taibuivan/nicocal/internal/platform/request"
	"github.com/taibuivan/nicocal/internal/platform/respond"
)

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// Neither route sits behind the session gate; logging in is how a client
// obtains the cookie the gate checks.
type Handler struct {
	authService  *Service
	secureCookie bool
	strictSchema bool
}

// HandlerOptions tunes cookie and validation behaviour.
type HandlerOptions struct {
	// SecureCookie sets the Secure flag; enabled in production.
	SecureCookie bool

	// StrictSchema turns on the extended login schema.
	StrictSchema bool
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, options HandlerOptions) *Handler {
	return &Handler{
		authService:  service,
		secureCookie: options.SecureCookie,
		strictSchema: options.StrictSchema,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login  : Verifies credentials and sets the session cookie.
//   - POST /logout : Clears the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

/*
Login authenticates a user.

POST /api/auth/login

Request:
  - Body: LoginInput (userId, password)

Response:
  - 200: {success, message} and the session cookie
  - 400: Validation failure
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if err := validateLogin(input, handler.strictSchema); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	token, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	http.SetCookie(writer, handler.sessionCookie(token, int(handler.authService.SessionTTL().Seconds())))
	respond.Message(writer, "Login successful")
}

/*
Logout ends the session.

POST /api/auth/logout

Description: Always succeeds. The cookie is cleared and, when a denylist is
configured, the presented token is revoked.

Response:
  - 200: {success, message}
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		handler.authService.Logout(request.Context(), cookie.Value)
	}

	http.SetCookie(writer, handler.sessionCookie("", -1))
	respond.Message(writer, "Logout successful")
}

func (handler *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
