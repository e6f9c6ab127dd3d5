// Package follow provides the HTTP handler for following and unfollowing users.
package follow

import (
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/decode"
	"newsroom/internal/handler/http/respond"
	followUC "newsroom/internal/usecase/follow"
)

type toggleRequest struct {
	FollowingID string `json:"followingId" validate:"required" example:"0b6f7c2e-3f5b-4a44-9d0e-1c7b9f3e2a10"`
	Action      string `json:"action" validate:"required" example:"follow" enums:"follow,unfollow"`
}

type ToggleHandler struct{ Svc followUC.Service }

// ServeHTTP フォロー／フォロー解除
// @Summary      フォロー／フォロー解除
// @Tags         follow
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body toggleRequest true "対象ユーザーと操作"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string "自分自身・二重フォロー・不正な操作"
// @Failure      401 {object} map[string]string "未ログイン"
// @Failure      404 {object} map[string]string "ユーザーまたはフォロー関係が存在しない"
// @Router       /api/follow [post]
func (h ToggleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decode.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user := auth.UserFromContext(r.Context())
	action := entity.FollowAction(req.Action)
	if err := h.Svc.Toggle(r.Context(), user.ID, req.FollowingID, action); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	msg := "Successfully followed user"
	if action == entity.ActionUnfollow {
		msg = "Successfully unfollowed user"
	}
	respond.Message(w, http.StatusOK, msg)
}

// Register registers the follow route.
func Register(mux *http.ServeMux, svc followUC.Service) {
	mux.Handle("POST   /api/follow", auth.RequireUser(ToggleHandler{svc}))
}
