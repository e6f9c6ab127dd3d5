package newsletter

import (
	"log/slog"
	"net/http"
	"time"

	"newsroom/internal/common/pagination"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

type ListHandler struct{ Svc nlUC.Service }

// ServeHTTP ニュースレター一覧
// @Summary      ニュースレター一覧
// @Description  新しい順に返します。下書きは本人の一覧か管理者にのみ含まれます
// @Tags         newsletters
// @Security     SessionCookie
// @Produce      json
// @Param        authorId query string false "著者ID"
// @Success      200 {array} DTO
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/newsletters [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context(), auth.UserFromContext(r.Context()), r.URL.Query().Get("authorId"))
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list, true))
}

// AdminListHandler lists every newsletter, drafts included.
type AdminListHandler struct{ Svc nlUC.Service }

// ServeHTTP 全ニュースレター一覧（管理者）
// @Summary      全ニュースレター一覧
// @Tags         admin
// @Security     SessionCookie
// @Produce      json
// @Success      200 {array} DTO
// @Failure      401 {object} map[string]string "管理者以外"
// @Router       /api/admin/newsletters [get]
func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context(), auth.UserFromContext(r.Context()), "")
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list, true))
}

// FeedHandler pages through the published newsletters of followed authors.
type FeedHandler struct {
	Svc           nlUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP フォロー中フィード
// @Summary      フォロー中の著者のフィード
// @Tags         newsletters
// @Security     SessionCookie
// @Produce      json
// @Param        page query int false "ページ番号" default(1)
// @Param        limit query int false "件数" default(20)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} map[string]string "ページング不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/feed [get]
func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordRequest("feed", http.StatusBadRequest, params.Page, time.Since(start))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.UserFromContext(r.Context())
	result, err := h.Svc.Feed(r.Context(), user.ID, params)
	if err != nil {
		pagination.RecordRequest("feed", http.StatusInternalServerError, params.Page, time.Since(start))
		respond.DomainError(w, r, err)
		return
	}

	pagination.RecordRequest("feed", http.StatusOK, params.Page, time.Since(start))
	slog.DebugContext(r.Context(), "feed page served",
		slog.String("user_id", user.ID),
		slog.Int("page", params.Page),
		slog.Int("returned", len(result.Data)))
	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Data, false), result.Pagination))
}
