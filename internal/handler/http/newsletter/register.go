package newsletter

import (
	"net/http"

	"newsroom/internal/common/pagination"
	"newsroom/internal/handler/http/auth"
	nlUC "newsroom/internal/usecase/newsletter"
)

// Register registers the newsletter routes. Reading a single newsletter is
// public; everything else needs a session, and the admin listing an admin.
func Register(mux *http.ServeMux, svc nlUC.Service, paginationCfg pagination.Config) {
	mux.Handle("GET    /api/newsletters", auth.RequireUser(ListHandler{svc}))
	mux.Handle("POST   /api/newsletters", auth.RequireUser(CreateHandler{svc}))
	mux.Handle("GET    /api/newsletters/", GetHandler{svc})
	mux.Handle("PUT    /api/newsletters/", auth.RequireUser(UpdateHandler{svc}))
	mux.Handle("DELETE /api/newsletters/", auth.RequireUser(DeleteHandler{svc}))

	mux.Handle("GET    /api/feed", auth.RequireUser(FeedHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("GET    /api/admin/newsletters", auth.RequireAdmin(AdminListHandler{svc}))
}
