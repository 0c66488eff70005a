package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fintrackapp/fintrack/internal/finance/application"
	"github.com/fintrackapp/fintrack/internal/finance/domain"
)

type ScoreServiceInterface interface {
	GetReport(userID, monthTag string) (*application.ScoreReport, error)
	GetUserRules(userID string) ([]domain.ScoreRule, error)
	UpsertRule(userID string, rule *domain.ScoreRule) (*domain.ScoreRule, error)
	UpdateRule(userID string, rule *domain.ScoreRule) error
	DeleteRule(userID string, ruleID int) error
}

type ScoreHandler struct {
	service      ScoreServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewScoreHandler(
	service ScoreServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ScoreHandler {
	return &ScoreHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ScoreHandler) GetScoreReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := h.service.GetReport(userID, r.URL.Query().Get("month"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build score report")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *ScoreHandler) GetScoreRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rules, err := h.service.GetUserRules(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to list score rules")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   rules,
	})
}

// UpsertScoreRule creates or replaces the rule for a category. One category
// holds at most one rule.
func (h *ScoreHandler) UpsertScoreRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		CategoryID   int      `json:"category_id"`
		MonthlyLimit float64  `json:"monthly_limit"`
		WarningPct   *float64 `json:"warning_pct"`
		Active       *bool    `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule := domain.ScoreRule{
		CategoryID:   req.CategoryID,
		MonthlyLimit: req.MonthlyLimit,
		WarningPct:   0.80,
		Active:       true,
	}
	if req.WarningPct != nil {
		rule.WarningPct = *req.WarningPct
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	saved, err := h.service.UpsertRule(userID, &rule)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to save score rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Score rule successfully saved.",
		"data":    saved,
	})
}

func (h *ScoreHandler) UpdateScoreRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ruleID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	var req struct {
		MonthlyLimit float64  `json:"monthly_limit"`
		WarningPct   *float64 `json:"warning_pct"`
		Active       *bool    `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule := domain.ScoreRule{
		ID:           ruleID,
		MonthlyLimit: req.MonthlyLimit,
		WarningPct:   0.80,
		Active:       true,
	}
	if req.WarningPct != nil {
		rule.WarningPct = *req.WarningPct
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := h.service.UpdateRule(userID, &rule); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update score rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Score rule successfully updated.",
	})
}

func (h *ScoreHandler) DeleteScoreRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ruleID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	if err := h.service.DeleteRule(userID, ruleID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete score rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Score rule successfully deleted.",
	})
}
