package newsletter

import (
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

type DeleteHandler struct{ Svc nlUC.Service }

// ServeHTTP ニュースレター削除
// @Summary      ニュースレター削除
// @Tags         newsletters
// @Security     SessionCookie
// @Produce      json
// @Param        id path string true "ニュースレターID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} map[string]string "未ログイン"
// @Failure      403 {object} map[string]string "権限なし"
// @Failure      404 {object} map[string]string "存在しない"
// @Router       /api/newsletters/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/newsletters/")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid newsletter id")
		return
	}

	if err := h.Svc.Delete(r.Context(), id, auth.UserFromContext(r.Context())); err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "Newsletter deleted successfully")
}
