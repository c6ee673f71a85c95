package feed

import (
	"net/http"

	feedUC "feedrank/internal/usecase/feed"
)

// Register wires the feed routes onto the mux.
func Register(mux *http.ServeMux, svc *feedUC.Service, defaultLimit int) {
	mux.Handle("GET /v1/feed", GetHandler{Svc: svc, DefaultLimit: defaultLimit})
}
