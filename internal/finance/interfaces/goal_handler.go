package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
)

type GoalServiceInterface interface {
	GetUserGoals(userID string) ([]domain.Goal, error)
	GetGoal(userID string, goalID int) (*domain.Goal, error)
	CreateGoal(goal *domain.Goal) error
	UpdateGoal(goal domain.Goal) error
	DeleteGoal(userID string, goalID int) error
}

type goalRequest struct {
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	TargetAmount float64 `json:"target_amount"`
	MonthTag     *string `json:"month_tag"`
	CategoryID   *int    `json:"category_id"`
}

type GoalHandler struct {
	service      GoalServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewGoalHandler(
	service GoalServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *GoalHandler {
	return &GoalHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *GoalHandler) GetUserGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.service.GetUserGoals(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   goals,
	})
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal := domain.Goal{
		UserID:       userID,
		Name:         req.Name,
		Kind:         req.Kind,
		TargetAmount: req.TargetAmount,
		MonthTag:     req.MonthTag,
		CategoryID:   req.CategoryID,
	}
	if err := h.service.CreateGoal(&goal); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create goal")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully created.",
		"data":    goal,
	})
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goalID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	existing, err := h.service.GetGoal(userID, goalID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to load goal")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal := domain.Goal{
		ID:           existing.ID,
		UserID:       userID,
		Name:         req.Name,
		Kind:         req.Kind,
		TargetAmount: req.TargetAmount,
		MonthTag:     req.MonthTag,
		CategoryID:   req.CategoryID,
		CreatedAt:    existing.CreatedAt,
	}
	if err := h.service.UpdateGoal(goal); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully updated.",
		"data":    goal,
	})
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goalID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	if err := h.service.DeleteGoal(userID, goalID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Goal successfully deleted.",
	})
}
