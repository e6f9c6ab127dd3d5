package user

import (
	"net/http"

	"newsroom/internal/common/pagination"
	"newsroom/internal/handler/http/auth"
	userUC "newsroom/internal/usecase/user"
)

// Register registers the profile, discovery and admin user routes.
func Register(mux *http.ServeMux, svc userUC.Service, paginationCfg pagination.Config) {
	mux.Handle("POST   /api/user/update", auth.RequireUser(UpdateProfileHandler{svc}))
	mux.Handle("POST   /api/user/update-image", auth.RequireUser(UpdateImageHandler{svc}))

	mux.Handle("GET    /api/users/discover", auth.RequireUser(DiscoverHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("GET    /api/users/", ProfileHandler{svc})

	mux.Handle("GET    /api/admin/users", auth.RequireAdmin(AdminListHandler{svc}))
	mux.Handle("POST   /api/admin/users", auth.RequireAdmin(AdminCreateHandler{svc}))
}
