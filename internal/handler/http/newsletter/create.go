package newsletter

import (
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/decode"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

type CreateHandler struct{ Svc nlUC.Service }

// ServeHTTP ニュースレター作成
// @Summary      ニュースレター作成
// @Description  下書きとしてニュースレターを作成します
// @Tags         newsletters
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        newsletter body createRequest true "タイトルと本文"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "入力不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /api/newsletters [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req createRequest
	if err := decode.JSON(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	n, err := h.Svc.Create(r.Context(), user.ID, nlUC.CreateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(n, false))
}
