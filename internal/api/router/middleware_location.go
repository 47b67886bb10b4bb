package router

import (
	"net/http"
	"strings"

	"github.com/garcia-realty/leadflow/internal/tenancy"
)

const locationHeader = "X-Location-Id"

// requireLocationID middleware enforces multi-tenancy headers for API
// requests.
func requireLocationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locationID := strings.TrimSpace(r.Header.Get(locationHeader))
		if locationID == "" {
			http.Error(w, "missing X-Location-Id", http.StatusBadRequest)
			return
		}
		ctx := tenancy.WithLocationID(r.Context(), locationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// locationIDFromRequest exposes the location id for local handlers.
func locationIDFromRequest(r *http.Request) (string, bool) {
	return tenancy.LocationIDFromContext(r.Context())
}
