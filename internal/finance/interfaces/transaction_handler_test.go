package interfaces

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackapp/fintrack/internal/finance/application"
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
)

const testUserID = "test-user-id"

func newTransactionHandler() (*TransactionHandler, *infrastructure.MockTransactionRepository) {
	repo := &infrastructure.MockTransactionRepository{}
	categoryService := application.NewCategoryService(&infrastructure.MockCategoryRepository{}, repo)
	accountService := application.NewAccountService(&infrastructure.MockAccountRepository{}, repo)
	service := application.NewTransactionService(repo, categoryService, accountService)
	return NewTransactionHandler(service, respondJSON, respondError), repo
}

func TestCreateTransactionHandler(t *testing.T) {
	handler, repo := newTransactionHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"description": "Weekly shop",
		"amount":      52.5,
		"type":        "debit",
		"date":        "2026-03-10",
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.Len(t, repo.Transactions, 1)
	assert.Equal(t, testUserID, repo.Transactions[0].UserID)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response["status"])
	assert.Nil(t, response["warnings"])
}

func TestCreateTransactionHandler_StringAmount(t *testing.T) {
	handler, repo := newTransactionHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"description": "Furniture",
		"amount":      "1.234,56",
		"type":        "debit",
		"date":        "2026-03-10",
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	require.Len(t, repo.Transactions, 1)
	assert.InDelta(t, 1234.56, repo.Transactions[0].Amount, 0.001)
}

func TestCreateTransactionHandler_UnparsableAmount(t *testing.T) {
	handler, repo := newTransactionHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"description": "Furniture",
		"amount":      "abc",
		"type":        "debit",
		"date":        "2026-03-10",
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.Empty(t, repo.Transactions)
}

func TestCreateTransactionHandler_InvalidDateFallsBackToToday(t *testing.T) {
	handler, repo := newTransactionHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"description": "Weekly shop",
		"amount":      10.0,
		"type":        "debit",
		"date":        "10th of March",
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.Len(t, repo.Transactions, 1)
	assert.WithinDuration(t, time.Now().UTC(), repo.Transactions[0].Date, time.Minute)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	require.NotNil(t, response["warnings"])
}

func TestCreateTransactionHandler_ValidationError(t *testing.T) {
	handler, repo := newTransactionHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"description": "Broken",
		"amount":      10.0,
		"type":        "transfer",
		"date":        "2026-03-10",
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.Empty(t, repo.Transactions)
}

func TestCreateTransactionHandler_Unauthorized(t *testing.T) {
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestGetUserTransactionsHandler_Filters(t *testing.T) {
	handler, repo := newTransactionHandler()
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	repo.Transactions = []domain.Transaction{
		{ID: "a", UserID: testUserID, Description: "in range", Type: domain.TypeDebit, Amount: 10, Date: march.AddDate(0, 0, 9)},
		{ID: "b", UserID: testUserID, Description: "end date is inclusive", Type: domain.TypeDebit, Amount: 20, Date: march.AddDate(0, 0, 14)},
		{ID: "c", UserID: testUserID, Description: "after range", Type: domain.TypeDebit, Amount: 30, Date: march.AddDate(0, 0, 15)},
		{ID: "d", UserID: testUserID, Description: "wrong type", Type: domain.TypeCredit, Amount: 40, Date: march.AddDate(0, 0, 9)},
	}

	req := withUser(httptest.NewRequest(http.MethodGet,
		"/transactions?type=debit&start_date=2026-03-01&end_date=2026-03-15", nil), testUserID)
	w := httptest.NewRecorder()

	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			Transactions []domain.Transaction `json:"transactions"`
			Total        int                  `json:"total"`
			PageSize     int                  `json:"page_size"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, 2, response.Data.Total)
	assert.Equal(t, application.PageSize, response.Data.PageSize)
	require.Len(t, response.Data.Transactions, 2)
}

func TestGetUserTransactionsHandler_BadFilter(t *testing.T) {
	handler, _ := newTransactionHandler()

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions?type=transfer", nil), testUserID)
	w := httptest.NewRecorder()

	handler.GetUserTransactions(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestUpdateTransactionHandler_InvalidDateKeepsExisting(t *testing.T) {
	handler, repo := newTransactionHandler()
	originalDate := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	repo.Transactions = []domain.Transaction{
		{ID: "tx-1", UserID: testUserID, Description: "Weekly shop", Type: domain.TypeDebit, Amount: 10, Date: originalDate},
	}

	body, _ := json.Marshal(map[string]interface{}{
		"description": "Weekly shop edited",
		"amount":      12.0,
		"type":        "debit",
		"date":        "garbage",
	})
	req := withUser(httptest.NewRequest(http.MethodPut, "/transactions/tx-1", bytes.NewBuffer(body)), testUserID)
	req.SetPathValue("id", "tx-1")
	w := httptest.NewRecorder()

	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Weekly shop edited", repo.Transactions[0].Description)
	assert.True(t, repo.Transactions[0].Date.Equal(originalDate))

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	require.NotNil(t, response["warnings"])
}

func TestDeleteTransactionHandler_NotFound(t *testing.T) {
	handler, _ := newTransactionHandler()

	req := withUser(httptest.NewRequest(http.MethodDelete, "/transactions/missing", nil), testUserID)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}
