package auth

import (
	"net/http"

	authservice "newsroom/internal/service/auth"
)

// Register mounts the /api/auth routes. signInLimit wraps the sign-in
// endpoint and may be nil.
func Register(mux *http.ServeMux, svc *authservice.AuthService, cookie CookieConfig, signInLimit func(http.Handler) http.Handler) {
	var signIn http.Handler = SignInHandler{Svc: svc, Cookie: cookie}
	if signInLimit != nil {
		signIn = signInLimit(signIn)
	}
	mux.Handle("POST   /api/auth/sign-in", signIn)
	mux.Handle("POST   /api/auth/sign-out", SignOutHandler{Cookie: cookie})
	mux.Handle("GET    /api/auth/me", RequireUser(MeHandler{}))
	if svc.AdminBypass {
		mux.Handle("GET    /api/auth/admin", AdminBypassHandler{Svc: svc, Cookie: cookie})
	}
}
