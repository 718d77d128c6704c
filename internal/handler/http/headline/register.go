package headline

import (
	"net/http"

	"newsfox/internal/common/pagination"
)

// Register adds the public headline routes to mux.
func Register(mux *http.ServeMux, svc Service, paginationCfg pagination.Config) {
	mux.Handle("GET /categories", CategoriesHandler{})
	mux.Handle("GET /headlines/{category}", PageHandler{Svc: svc, PaginationCfg: paginationCfg})
}
