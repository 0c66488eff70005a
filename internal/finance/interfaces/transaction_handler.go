package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/application"
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	"github.com/fintrackapp/fintrack/internal/moneyfmt"
)

type TransactionServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	GetTransaction(userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(userID string, filter domain.TransactionFilter, page int) ([]domain.Transaction, int, error)
	UpdateTransaction(transaction domain.Transaction) error
	DeleteTransaction(userID, transactionID string) error
}

// amountValue accepts an amount as a JSON number or as a string in comma- or
// dot-decimal notation ("10.50", "1.234,56").
type amountValue float64

func (a *amountValue) UnmarshalJSON(data []byte) error {
	parsed, err := moneyfmt.Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*a = amountValue(parsed)
	return nil
}

type transactionRequest struct {
	Description string      `json:"description"`
	Amount      amountValue `json:"amount"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	CategoryID  *int        `json:"category_id"`
	AccountID   *int        `json:"account_id"`
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var warnings []string
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		// An unparseable date falls back to today instead of failing the
		// whole request.
		date = time.Now().UTC()
		warnings = append(warnings, "Invalid date, today's date was used instead")
	}

	transaction := domain.Transaction{
		UserID:      userID,
		Description: req.Description,
		Amount:      float64(req.Amount),
		Type:        req.Type,
		Date:        date,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
	}
	if err := h.service.CreateTransaction(&transaction); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create transaction")
		return
	}

	payload := map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	}
	if len(warnings) > 0 {
		payload["warnings"] = warnings
	}
	h.respondJSON(w, http.StatusCreated, payload)
}

func (h *TransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := parseTransactionFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			h.respondError(w, http.StatusBadRequest, "Invalid page number")
			return
		}
	}

	transactions, total, err := h.service.ListTransactions(userID, filter, page)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"transactions": transactions,
			"total":        total,
			"page":         page,
			"page_size":    application.PageSize,
		},
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transaction, err := h.service.GetTransaction(userID, r.PathValue("id"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to load transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existing, err := h.service.GetTransaction(userID, r.PathValue("id"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to load transaction")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var warnings []string
	date := existing.Date
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			// An edit with a broken date keeps the stored one.
			warnings = append(warnings, "Invalid date, the previous date was kept")
		} else {
			date = parsed
		}
	}

	updated := domain.Transaction{
		ID:          existing.ID,
		UserID:      userID,
		Description: req.Description,
		Amount:      float64(req.Amount),
		Type:        req.Type,
		Date:        date,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
	}
	if err := h.service.UpdateTransaction(updated); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update transaction")
		return
	}

	payload := map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    updated,
	}
	if len(warnings) > 0 {
		payload["warnings"] = warnings
	}
	h.respondJSON(w, http.StatusOK, payload)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteTransaction(userID, r.PathValue("id")); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

// parseTransactionFilter reads the optional list filters from the query
// string. An end date is inclusive for the caller, so it becomes an
// exclusive bound on the following day.
func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter
	query := r.URL.Query()

	if transactionType := query.Get("type"); transactionType != "" {
		if !domain.IsValidTransactionType(transactionType) {
			return filter, errInvalidFilter("type")
		}
		filter.Type = transactionType
	}

	if categoryStr := query.Get("category_id"); categoryStr != "" {
		categoryID, err := strconv.Atoi(categoryStr)
		if err != nil {
			return filter, errInvalidFilter("category_id")
		}
		filter.CategoryID = &categoryID
	}

	if accountStr := query.Get("account_id"); accountStr != "" {
		accountID, err := strconv.Atoi(accountStr)
		if err != nil {
			return filter, errInvalidFilter("account_id")
		}
		filter.AccountID = &accountID
	}

	if startStr := query.Get("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return filter, errInvalidFilter("start_date")
		}
		filter.StartDate = &start
	}

	if endStr := query.Get("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return filter, errInvalidFilter("end_date")
		}
		endExclusive := end.AddDate(0, 0, 1)
		filter.EndDate = &endExclusive
	}

	if minStr := query.Get("min_amount"); minStr != "" {
		minAmount, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return filter, errInvalidFilter("min_amount")
		}
		filter.MinAmount = &minAmount
	}

	if maxStr := query.Get("max_amount"); maxStr != "" {
		maxAmount, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return filter, errInvalidFilter("max_amount")
		}
		filter.MaxAmount = &maxAmount
	}

	return filter, nil
}
