// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/session"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookieName is the cookie carrying the login session token.
const SessionCookieName = "dealer_session"

// publicPaths lists endpoints reachable without a session, so new users can
// register and log in.
var publicPaths = map[string]bool{
	"/api/register": true,
	"/api/login":    true,
	"/api/health":   true,
}

// SessionAuth returns a middleware that enforces cookie-session authentication.
//
// It resolves the session cookie against the store; requests without a valid,
// unexpired session are rejected. Registration, login, and the health check
// are excluded so unauthenticated users can reach them.
//
// On success, the session's user id is stored in the request context, so it
// can be used downstream as the authenticated principal.
func SessionAuth(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			userID, ok := store.Resolve(cookie.Value)
			if !ok {
				http.Error(w, "session expired or invalid", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user's id from the request
// context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	val := ctx.Value(userKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}

// IsAuthenticated reports whether the context carries an authenticated principal.
func IsAuthenticated(ctx context.Context) bool {
	return GetUserIDFromContext(ctx) != 0
}
