package infrastructure

import (
	"database/sql"
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

// MockTransactionRepository serves service tests from an in-memory slice.
// CategoryNames backs the joined lookups the SQL repository does with JOINs.
type MockTransactionRepository struct {
	Transactions  []domain.Transaction
	CategoryNames map[int]string
	AccountNames  map[int]string
	SaveErr       error
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) SaveWithTransaction(transaction domain.Transaction, tx *sql.Tx) error {
	return m.Save(transaction)
}

func (m *MockTransactionRepository) BeginTransaction() (*sql.Tx, error) {
	return nil, nil
}

func (m *MockTransactionRepository) FindByID(userID, transactionID string) (*domain.Transaction, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			return &m.Transactions[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockTransactionRepository) FindByUser(userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	matched := m.matching(userID, filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MockTransactionRepository) CountByUser(userID string, filter domain.TransactionFilter) (int, error) {
	return len(m.matching(userID, filter)), nil
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transaction.ID && m.Transactions[i].UserID == transaction.UserID {
			m.Transactions[i] = transaction
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockTransactionRepository) Delete(userID, transactionID string) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockTransactionRepository) ExistsByCategory(userID string, categoryID int) (bool, error) {
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.CategoryID != nil && *transaction.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) ExistsByAccount(userID string, accountID int) (bool, error) {
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.AccountID != nil && *transaction.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) FindInRange(userID string, start, end time.Time) ([]domain.Transaction, error) {
	var filtered []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && inRange(transaction.Date, start, end) {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

func (m *MockTransactionRepository) FindExportRowsInRange(userID string, start, end time.Time) ([]domain.ExportRow, error) {
	var exportRows []domain.ExportRow
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || !inRange(transaction.Date, start, end) {
			continue
		}
		row := domain.ExportRow{
			Date:        transaction.Date,
			Description: transaction.Description,
			Type:        transaction.Type,
			Amount:      transaction.Amount,
		}
		if transaction.CategoryID != nil {
			row.Category = m.CategoryNames[*transaction.CategoryID]
		}
		if transaction.AccountID != nil {
			row.Account = m.AccountNames[*transaction.AccountID]
		}
		exportRows = append(exportRows, row)
	}
	return exportRows, nil
}

func (m *MockTransactionRepository) SumByType(userID, transactionType string) (float64, error) {
	var total float64
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.Type == transactionType {
			total += transaction.Amount
		}
	}
	return total, nil
}

func (m *MockTransactionRepository) SumByTypeInRange(userID, transactionType string, start, end time.Time) (float64, error) {
	var total float64
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.Type == transactionType && inRange(transaction.Date, start, end) {
			total += transaction.Amount
		}
	}
	return total, nil
}

func (m *MockTransactionRepository) SumDebitsByCategoryInRange(userID string, start, end time.Time) ([]domain.CategoryAmount, error) {
	totals := map[int]float64{}
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.Type == domain.TypeDebit &&
			transaction.CategoryID != nil && inRange(transaction.Date, start, end) {
			totals[*transaction.CategoryID] += transaction.Amount
		}
	}
	var amounts []domain.CategoryAmount
	for categoryID, total := range totals {
		if total > 0 {
			amounts = append(amounts, domain.CategoryAmount{
				CategoryID:   categoryID,
				CategoryName: m.CategoryNames[categoryID],
				Amount:       total,
			})
		}
	}
	return amounts, nil
}

func (m *MockTransactionRepository) SumDebitsForCategoryInRange(userID string, categoryID int, start, end time.Time) (float64, error) {
	var total float64
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.Type == domain.TypeDebit &&
			transaction.CategoryID != nil && *transaction.CategoryID == categoryID &&
			inRange(transaction.Date, start, end) {
			total += transaction.Amount
		}
	}
	return total, nil
}

func (m *MockTransactionRepository) matching(userID string, filter domain.TransactionFilter) []domain.Transaction {
	var matched []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if domain.IsValidTransactionType(filter.Type) && transaction.Type != filter.Type {
			continue
		}
		if filter.CategoryID != nil && (transaction.CategoryID == nil || *transaction.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.AccountID != nil && (transaction.AccountID == nil || *transaction.AccountID != *filter.AccountID) {
			continue
		}
		if filter.StartDate != nil && transaction.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !transaction.Date.Before(*filter.EndDate) {
			continue
		}
		if filter.MinAmount != nil && transaction.Amount < *filter.MinAmount {
			continue
		}
		if filter.MaxAmount != nil && transaction.Amount > *filter.MaxAmount {
			continue
		}
		matched = append(matched, transaction)
	}
	return matched
}

func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && date.Before(end)
}
