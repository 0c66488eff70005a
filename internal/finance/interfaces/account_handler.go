package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
)

type AccountServiceInterface interface {
	GetUserAccounts(userID string) ([]domain.Account, error)
	GetAccount(userID string, accountID int) (*domain.Account, error)
	CreateAccount(account *domain.Account) error
	UpdateAccount(account domain.Account) error
	DeleteAccount(userID string, accountID int) error
}

type AccountHandler struct {
	service      AccountServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAccountHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AccountHandler {
	return &AccountHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *AccountHandler) GetUserAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.service.GetUserAccounts(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   accounts,
	})
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account := domain.Account{UserID: userID, Name: req.Name, Type: req.Type}
	if err := h.service.CreateAccount(&account); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create account")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully created.",
		"data":    account,
	})
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account := domain.Account{ID: accountID, UserID: userID, Name: req.Name, Type: req.Type}
	if err := h.service.UpdateAccount(account); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update account")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully updated.",
		"data":    account,
	})
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	if err := h.service.DeleteAccount(userID, accountID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete account")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Account successfully deleted.",
	})
}
