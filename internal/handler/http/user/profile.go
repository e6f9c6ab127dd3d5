package user

import (
	"errors"
	"net/http"
	"time"

	"newsroom/internal/common/pagination"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/decode"
	"newsroom/internal/handler/http/newsletter"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	userUC "newsroom/internal/usecase/user"
)

type UpdateProfileHandler struct{ Svc userUC.Service }

// ServeHTTP プロフィール更新
// @Summary      プロフィール更新
// @Tags         users
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body updateProfileRequest true "名前・自己紹介・カスタムリンク"
// @Success      200 {object} updateProfileResponse
// @Failure      400 {object} map[string]string "入力不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Failure      409 {object} map[string]string "カスタムリンク使用済み"
// @Router       /api/user/update [post]
func (h UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decode.JSON(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	me := auth.UserFromContext(r.Context())
	u, err := h.Svc.UpdateProfile(r.Context(), me.ID, userUC.ProfileInput{
		Name:       req.Name,
		Bio:        req.Bio,
		CustomLink: req.CustomLink,
	})
	if err != nil {
		if errors.Is(err, userUC.ErrCustomLinkTaken) {
			respond.Error(w, http.StatusConflict, userUC.ErrCustomLinkTaken.Message)
			return
		}
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, updateProfileResponse{Message: "Profile updated successfully", User: toDTO(u)})
}

type UpdateImageHandler struct{ Svc userUC.Service }

// ServeHTTP プロフィール画像更新
// @Summary      プロフィール画像更新
// @Tags         users
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body updateImageRequest true "画像URL"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string "URL不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/user/update-image [post]
func (h UpdateImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateImageRequest
	if err := decode.JSON(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}
	me := auth.UserFromContext(r.Context())
	if err := h.Svc.UpdateImage(r.Context(), me.ID, req.ImageURL); err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "Profile image updated successfully")
}

type DiscoverHandler struct {
	Svc           userUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP ユーザー発見
// @Summary      ユーザー発見
// @Description  自分以外のユーザーをフォロワー数の多い順に返します
// @Tags         users
// @Security     SessionCookie
// @Produce      json
// @Param        page query int false "ページ番号" default(1)
// @Param        limit query int false "件数" default(20)
// @Success      200 {object} pagination.Response[DiscoverDTO]
// @Failure      400 {object} map[string]string "ページング不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/users/discover [get]
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordRequest("discover", http.StatusBadRequest, params.Page, time.Since(start))
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	me := auth.UserFromContext(r.Context())
	result, err := h.Svc.Discover(r.Context(), me.ID, params)
	if err != nil {
		pagination.RecordRequest("discover", http.StatusInternalServerError, params.Page, time.Since(start))
		respond.DomainError(w, r, err)
		return
	}

	rows := make([]DiscoverDTO, 0, len(result.Data))
	for _, e := range result.Data {
		rows = append(rows, DiscoverDTO{
			DTO:             toDTO(e.User),
			FollowerCount:   e.FollowerCount,
			FollowingCount:  e.FollowingCount,
			NewsletterCount: e.NewsletterCount,
			IsFollowing:     e.IsFollowing,
		})
	}
	pagination.RecordRequest("discover", http.StatusOK, params.Page, time.Since(start))
	respond.JSON(w, http.StatusOK, pagination.NewResponse(rows, result.Pagination))
}

type ProfileHandler struct{ Svc userUC.Service }

// ServeHTTP プロフィール取得
// @Summary      プロフィール取得
// @Description  ユーザーIDまたはカスタムリンクで公開プロフィールを取得します
// @Tags         users
// @Produce      json
// @Param        id path string true "ユーザーIDまたはカスタムリンク"
// @Success      200 {object} ProfileDTO
// @Failure      404 {object} map[string]string "存在しない"
// @Router       /api/users/{id} [get]
func (h ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/users/")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	p, err := h.Svc.Profile(r.Context(), id, auth.UserFromContext(r.Context()))
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}

	out := ProfileDTO{
		User:           toDTO(p.User),
		FollowerCount:  p.FollowerCount,
		FollowingCount: p.FollowingCount,
		IsFollowing:    p.IsFollowing,
		Newsletters:    make([]newsletter.DTO, 0, len(p.Newsletters)),
	}
	for _, n := range p.Newsletters {
		out.Newsletters = append(out.Newsletters, newsletter.ToDTO(n, false))
	}
	respond.JSON(w, http.StatusOK, out)
}
