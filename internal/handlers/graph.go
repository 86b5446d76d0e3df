package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paulr25/bp-tracker/internal/middleware"
	"github.com/paulr25/bp-tracker/internal/trend"
)

type GraphHandler struct {
	Builder *trend.Builder
}

// GetGraph returns the chart spec for the authenticated user's readings.
// An empty history is not a failure status: the body carries
// {"error":"No data available"} with 200, which the client renders as a notice.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	spec, err := h.Builder.BuildTrend(r.Context(), userID)
	if err != nil {
		if errors.Is(err, trend.ErrNoData) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"error": "No data available"})
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
