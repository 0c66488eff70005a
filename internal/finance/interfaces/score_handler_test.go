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

func newScoreHandler() (*ScoreHandler, *infrastructure.MockScoreRuleRepository, *infrastructure.MockCategoryRepository, *infrastructure.MockTransactionRepository) {
	ruleRepo := &infrastructure.MockScoreRuleRepository{CategoryNames: map[int]string{}}
	transactionRepo := &infrastructure.MockTransactionRepository{}
	categoryRepo := &infrastructure.MockCategoryRepository{}
	categoryService := application.NewCategoryService(categoryRepo, transactionRepo)
	service := application.NewScoreService(ruleRepo, transactionRepo, categoryService)
	return NewScoreHandler(service, respondJSON, respondError), ruleRepo, categoryRepo, transactionRepo
}

func TestUpsertScoreRuleHandler_Defaults(t *testing.T) {
	handler, ruleRepo, categoryRepo, _ := newScoreHandler()
	category := &domain.Category{UserID: testUserID, Name: "Groceries"}
	require.NoError(t, categoryRepo.Save(category))

	body, _ := json.Marshal(map[string]interface{}{
		"category_id":   category.ID,
		"monthly_limit": 200.0,
	})
	req := withUser(httptest.NewRequest(http.MethodPut, "/score/rules", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.UpsertScoreRule(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Len(t, ruleRepo.Rules, 1)
	assert.InDelta(t, 0.80, ruleRepo.Rules[0].WarningPct, 0.001)
	assert.True(t, ruleRepo.Rules[0].Active)
}

func TestUpsertScoreRuleHandler_UnknownCategory(t *testing.T) {
	handler, _, _, _ := newScoreHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"category_id":   42,
		"monthly_limit": 200.0,
	})
	req := withUser(httptest.NewRequest(http.MethodPut, "/score/rules", bytes.NewBuffer(body)), testUserID)
	w := httptest.NewRecorder()

	handler.UpsertScoreRule(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetScoreReportHandler(t *testing.T) {
	handler, ruleRepo, categoryRepo, transactionRepo := newScoreHandler()
	category := &domain.Category{UserID: testUserID, Name: "Groceries"}
	require.NoError(t, categoryRepo.Save(category))
	ruleRepo.CategoryNames[category.ID] = category.Name
	require.NoError(t, ruleRepo.Save(&domain.ScoreRule{
		UserID: testUserID, CategoryID: category.ID, MonthlyLimit: 200, WarningPct: 0.8, Active: true,
	}))
	transactionRepo.Transactions = []domain.Transaction{
		{ID: "a", UserID: testUserID, Type: domain.TypeDebit, Amount: 180, Date: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), CategoryID: &category.ID},
	}

	req := withUser(httptest.NewRequest(http.MethodGet, "/score?month=2026-03", nil), testUserID)
	w := httptest.NewRecorder()

	handler.GetScoreReport(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data application.ScoreReport `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	require.Len(t, response.Data.Entries, 1)
	assert.Equal(t, application.ScoreStatusWarning, response.Data.Entries[0].Status)
	assert.InDelta(t, 20, response.Data.Entries[0].Remaining, 0.01)
}

func TestUpdateScoreRuleHandler(t *testing.T) {
	handler, ruleRepo, categoryRepo, _ := newScoreHandler()
	category := &domain.Category{UserID: testUserID, Name: "Groceries"}
	require.NoError(t, categoryRepo.Save(category))
	rule := &domain.ScoreRule{
		UserID: testUserID, CategoryID: category.ID, MonthlyLimit: 200, WarningPct: 0.8, Active: true,
	}
	require.NoError(t, ruleRepo.Save(rule))

	body, _ := json.Marshal(map[string]interface{}{
		"monthly_limit": 350.0,
		"warning_pct":   0.9,
	})
	req := withUser(httptest.NewRequest(http.MethodPut, "/score/rules/1", bytes.NewBuffer(body)), testUserID)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	handler.UpdateScoreRule(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Len(t, ruleRepo.Rules, 1)
	assert.InDelta(t, 350.0, ruleRepo.Rules[0].MonthlyLimit, 0.001)
	assert.InDelta(t, 0.9, ruleRepo.Rules[0].WarningPct, 0.001)
}

func TestUpdateScoreRuleHandler_NotFound(t *testing.T) {
	handler, _, _, _ := newScoreHandler()

	body, _ := json.Marshal(map[string]interface{}{"monthly_limit": 100.0})
	req := withUser(httptest.NewRequest(http.MethodPut, "/score/rules/7", bytes.NewBuffer(body)), testUserID)
	req.SetPathValue("id", "7")
	w := httptest.NewRecorder()

	handler.UpdateScoreRule(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestDeleteScoreRuleHandler_NotFound(t *testing.T) {
	handler, _, _, _ := newScoreHandler()

	req := withUser(httptest.NewRequest(http.MethodDelete, "/score/rules/9", nil), testUserID)
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()

	handler.DeleteScoreRule(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}
