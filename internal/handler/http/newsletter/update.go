package newsletter

import (
	"encoding/json"
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

type UpdateHandler struct{ Svc nlUC.Service }

// ServeHTTP ニュースレター更新
// @Summary      ニュースレター更新
// @Description  著者または管理者が更新します。category を省略すると AI が分類します
// @Tags         newsletters
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        id path string true "ニュースレターID"
// @Param        newsletter body updateRequest true "更新内容"
// @Success      200 {object} updateResponse
// @Failure      400 {object} map[string]string "入力不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Failure      403 {object} map[string]string "権限なし"
// @Failure      404 {object} map[string]string "存在しない"
// @Router       /api/newsletters/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/newsletters/")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid newsletter id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	n, err := h.Svc.Update(r.Context(), id, auth.UserFromContext(r.Context()), nlUC.UpdateInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Content:      req.Content,
		Image:        req.ImageURL,
		Category:     req.Category,
		Published:    req.Published,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, updateResponse{
		Message:    "Newsletter updated successfully",
		Newsletter: ToDTO(n, true),
	})
}
