package auth

import (
	"context"
	"log/slog"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
)

// SessionResolver maps a session token to a user, nil when the token does
// not identify one.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) *entity.User
}

// Session attaches the user identified by the session cookie to the request
// context. Requests without a valid session pass through anonymously.
func Session(resolver SessionResolver, cookie CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Token(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			u := resolver.CurrentUser(r.Context(), token)
			if u == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireUser answers 401 unless a user is signed in.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			recordRejected("no_session", r.Method)
			respond.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 401 unless the signed-in user is an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFromContext(r.Context())
		if !u.IsAdmin() {
			reason := "not_admin"
			if u == nil {
				reason = "no_session"
			} else {
				slog.WarnContext(r.Context(), "admin route refused",
					slog.String("user_id", u.ID),
					slog.String("path", r.URL.Path))
			}
			recordRejected(reason, r.Method)
			respond.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
