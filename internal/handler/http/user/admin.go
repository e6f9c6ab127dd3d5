package user

import (
	"net/http"

	"newsroom/internal/handler/http/decode"
	"newsroom/internal/handler/http/respond"
	userUC "newsroom/internal/usecase/user"
)

type AdminListHandler struct{ Svc userUC.Service }

// ServeHTTP ユーザー一覧（管理者）
// @Summary      ユーザー一覧
// @Tags         admin
// @Security     SessionCookie
// @Produce      json
// @Success      200 {array} AdminDTO
// @Failure      401 {object} map[string]string "管理者以外"
// @Router       /api/admin/users [get]
func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	out := make([]AdminDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminDTO(u))
	}
	respond.JSON(w, http.StatusOK, out)
}

type AdminCreateHandler struct{ Svc userUC.Service }

// ServeHTTP ユーザー作成（管理者）
// @Summary      ユーザー作成
// @Tags         admin
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body createUserRequest true "アカウント情報"
// @Success      201 {object} AdminDTO
// @Failure      400 {object} map[string]string "入力不正・登録済み"
// @Failure      401 {object} map[string]string "管理者以外"
// @Router       /api/admin/users [post]
func (h AdminCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode.JSON(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}
	u, err := h.Svc.Create(r.Context(), userUC.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toAdminDTO(u))
}
