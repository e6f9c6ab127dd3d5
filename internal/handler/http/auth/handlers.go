package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/decode"
	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/metrics"
	authservice "newsroom/internal/service/auth"
)

// SignInHandler verifies credentials and sets the session cookie.
type SignInHandler struct {
	Svc    *authservice.AuthService
	Cookie CookieConfig
}

// ServeHTTP サインイン
// @Summary      サインイン
// @Description  メールアドレスとパスワードで認証し、セッションクッキーを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body signInRequest true "ログイン情報"
// @Success      200 {object} signInResponse
// @Failure      400 {object} map[string]string "入力不正"
// @Failure      401 {object} map[string]string "認証失敗"
// @Failure      429 {object} map[string]string "Too many requests"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /api/auth/sign-in [post]
func (h SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req signInRequest
	if err := decode.JSON(r, &req); err != nil {
		h.finish("invalid_request", start)
		respond.DomainError(w, r, err)
		return
	}

	user, sess, err := h.Svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			slog.WarnContext(r.Context(), "sign-in rejected", slog.String("reason", "invalid_credentials"))
			h.finish("failure", start)
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.finish("error", start)
		respond.DomainError(w, r, err)
		return
	}

	h.Cookie.Set(w, sess)
	h.finish("success", start)
	slog.InfoContext(r.Context(), "signed in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)))
	respond.JSON(w, http.StatusOK, signInResponse{Message: "Signed in successfully", User: toUserDTO(user)})
}

func (h SignInHandler) finish(result string, start time.Time) {
	metrics.RecordSignIn(result)
	recordSignInDuration(result, time.Since(start))
}

// SignOutHandler clears the session cookie. Sessions are stateless, so the
// token itself stays valid until it expires.
type SignOutHandler struct {
	Cookie CookieConfig
}

// ServeHTTP サインアウト
// @Summary      サインアウト
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /api/auth/sign-out [post]
func (h SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Cookie.Clear(w)
	respond.Message(w, http.StatusOK, "Signed out successfully")
}

// MeHandler returns the signed-in user.
type MeHandler struct{}

// ServeHTTP ログインユーザー取得
// @Summary      ログインユーザー取得
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserDTO
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/auth/me [get]
func (MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())
	if u == nil {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respond.JSON(w, http.StatusOK, toUserDTO(u))
}

// AdminBypassHandler signs the caller in as the admin fixture and redirects
// to the admin dashboard. Only registered when the bypass is enabled.
type AdminBypassHandler struct {
	Svc    *authservice.AuthService
	Cookie CookieConfig
}

// ServeHTTP 管理者バイパス
// @Summary      管理者バイパス（開発用）
// @Tags         auth
// @Success      303 "Redirect to /admin"
// @Failure      404 {object} map[string]string "無効"
// @Router       /api/auth/admin [get]
func (h AdminBypassHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.AdminSession(r.Context())
	if err != nil {
		if errors.Is(err, authservice.ErrAdminBypassDisabled) {
			http.NotFound(w, r)
			return
		}
		respond.DomainError(w, r, err)
		return
	}
	slog.WarnContext(r.Context(), "admin bypass session issued",
		slog.String("remote_addr", r.RemoteAddr))
	h.Cookie.Set(w, sess)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
