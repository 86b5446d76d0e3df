package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/paulr25/bp-tracker/internal/metrics"
	"github.com/paulr25/bp-tracker/internal/middleware"
	"github.com/paulr25/bp-tracker/internal/models"
	"github.com/paulr25/bp-tracker/internal/repo"
)

type ReadingHandler struct {
	Repo *repo.ReadingRepo
}

//
// ==========================
// List Readings (most recent first)
// ==========================
//

func (h *ReadingHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	readings, err := h.Repo.ListForUser(r.Context(), userID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	views := make([]models.ReadingView, 0, len(readings))
	for _, reading := range readings {
		views = append(views, reading.View())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

//
// ==========================
// Create Reading
// ==========================
//

func (h *ReadingHandler) CreateReading(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var input struct {
		Systolic  int    `json:"systolic" validate:"required,gt=0"`
		Diastolic int    `json:"diastolic" validate:"required,gt=0"`
		Timestamp string `json:"timestamp" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	takenAt, err := time.Parse(models.TimestampLayout, input.Timestamp)
	if err != nil {
		JSONError(w, "timestamp must be YYYY-MM-DDTHH:MM", http.StatusBadRequest)
		return
	}

	reading, err := h.Repo.Create(r.Context(), userID, input.Systolic, input.Diastolic, takenAt)
	if err != nil {
		JSONError(w, "database error", http.StatusBadRequest)
		return
	}

	metrics.IncReadingsCreated()
	JSONOk(w, map[string]interface{}{"reading": reading.View()})
}

//
// ==========================
// Delete Reading (ownership-checked)
// ==========================
//

func (h *ReadingHandler) DeleteReading(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONError(w, "invalid reading id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, repo.ErrReadingNotFound):
			JSONError(w, "reading not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrNotOwner):
			JSONError(w, "Unauthorized", http.StatusForbidden)
		default:
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	JSONOk(w, nil)
}
