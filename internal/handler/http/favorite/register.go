package favorite

import "net/http"

// Register adds the favorite routes to mux. Both require a bearer token,
// enforced by auth.Verifier.Authz around the whole mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /favorites", ListHandler{svc})
	mux.Handle("POST /favorites", CreateHandler{svc})
}
