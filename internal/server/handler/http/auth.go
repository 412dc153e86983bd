// Package http provides HTTP handlers for user authentication,
// including registration and session-cookie login.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/middleware"
	"github.com/dealerdesk/dealerdesk/internal/models"
	"github.com/dealerdesk/dealerdesk/internal/service"
	"github.com/dealerdesk/dealerdesk/internal/session"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	// Authenticate verifies a username/password pair.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	// Load rehydrates a user by id; absent ids return (nil, nil).
	Load(ctx context.Context, id int64) (*models.User, error)
}

// AuthHandler handles HTTP requests for registration, login, and logout.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Sessions issues and revokes login sessions.
	Sessions *session.Store
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	// Username is the login name to register.
	Username string `json:"username"`
	// Email is the e-mail address to register.
	Email string `json:"email"`
	// Password is the plaintext password; only its hash is stored.
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles user registration requests.
// It expects a JSON body with non-empty username, email, and password.
// Duplicate usernames or emails yield 409; success returns the created
// user as JSON with status 201.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// Login handles login requests. On valid credentials it creates a session,
// sets the session cookie, and returns the user as JSON. Invalid
// credentials yield 401 with no hint as to which field was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sess := h.Sessions.Create(u.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Logout revokes the current session and clears the cookie. Requests
// without a session cookie still succeed; there is nothing to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.Sessions.Revoke(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Me returns the authenticated principal, rehydrated from the session's
// user id. A session pointing at a deleted user yields 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	u, err := h.AuthService.Load(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.Error(w, "user no longer exists", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}
