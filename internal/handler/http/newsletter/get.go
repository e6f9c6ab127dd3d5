package newsletter

import (
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

type GetHandler struct{ Svc nlUC.Service }

// ServeHTTP ニュースレター取得
// @Summary      ニュースレター取得
// @Description  公開済みは誰でも、下書きは著者と管理者のみ取得できます
// @Tags         newsletters
// @Produce      json
// @Param        id path string true "ニュースレターID"
// @Success      200 {object} getResponse
// @Failure      400 {object} map[string]string "ID不正"
// @Failure      404 {object} map[string]string "存在しない"
// @Router       /api/newsletters/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/newsletters/")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid newsletter id")
		return
	}

	viewer := auth.UserFromContext(r.Context())
	n, err := h.Svc.Get(r.Context(), id, viewer)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, getResponse{Newsletter: ToDTO(n, viewer != nil)})
}
