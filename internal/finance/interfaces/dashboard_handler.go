package interfaces

import (
	"net/http"

	"github.com/fintrackapp/fintrack/internal/finance/application"
)

type DashboardServiceInterface interface {
	GetDashboard(userID, monthTag string) (*application.Dashboard, error)
}

type DashboardHandler struct {
	service      DashboardServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewDashboardHandler(
	service DashboardServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetDashboard serves the monthly report. The month query parameter uses the
// YYYY-MM format and defaults to the current month.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dashboard, err := h.service.GetDashboard(userID, r.URL.Query().Get("month"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   dashboard,
	})
}
