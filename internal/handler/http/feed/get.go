package feed

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"feedrank/internal/handler/http/respond"
	feedUC "feedrank/internal/usecase/feed"
)

// GetHandler serves the personalized feed.
type GetHandler struct {
	Svc          *feedUC.Service
	DefaultLimit int
}

// ServeHTTP returns the ranked feed for a tenant and user.
// @Summary      Get personalized feed
// @Description  Returns ranked video candidates for the user, degrading to the trending feed when personalization is unavailable
// @Tags         feed
// @Produce      json
// @Param        tenant_id query string true "Tenant ID"
// @Param        user_id query string true "User ID"
// @Param        limit query int false "Page size (default from config, max 50)"
// @Param        cursor query string false "Opaque pagination cursor"
// @Success      200 {object} DTO "Ranked feed"
// @Failure      400 {string} string "Bad request - missing or invalid parameters"
// @Failure      404 {string} string "Not found - unknown tenant or empty candidate pool"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      500 {string} string "Internal server error"
// @Router       /v1/feed [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tenantID := q.Get("tenant_id")
	if tenantID == "" {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("tenant_id is required"))
		return
	}
	userID := q.Get("user_id")
	if userID == "" {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("user_id is required"))
		return
	}

	limit := h.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("limit must be an integer"))
			return
		}
		limit = parsed
	}

	feed, err := h.Svc.GetFeed(r.Context(), feedUC.Query{
		TenantID: tenantID,
		UserID:   userID,
		Limit:    limit,
		Cursor:   q.Get("cursor"),
	})
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, feedUC.ErrInvalidLimit):
			code = http.StatusBadRequest
		case errors.Is(err, feedUC.ErrTenantNotFound),
			errors.Is(err, feedUC.ErrNoCandidates):
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(feed))
}
