package domain

import (
	"database/sql"
	"math"
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/errors"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TypeCredit || transactionType == TypeDebit
}

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	CategoryID  *int      `json:"category_id,omitempty"`
	AccountID   *int      `json:"account_id,omitempty"`
}

func (t *Transaction) Validate() error {
	if t.Description == "" {
		return errors.NewValidationError("Description must not be empty")
	}
	if len(t.Description) > 120 {
		return errors.NewValidationError("Description must be of length less than 120")
	}
	if !IsValidTransactionType(t.Type) {
		return errors.NewValidationError("Type must be 'credit' or 'debit'")
	}
	if t.Amount <= 0 {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	return nil
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}

// TransactionFilter narrows a listing. Nil/zero fields are skipped. EndDate is
// exclusive: callers listing through an inclusive end day pass day+1.
type TransactionFilter struct {
	Type       string
	CategoryID *int
	AccountID  *int
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *float64
	MaxAmount  *float64
}

// CategoryAmount is one slice of the category breakdown.
type CategoryAmount struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
}

// ExportRow is a transaction flattened for file export, with the category and
// account resolved to names.
type ExportRow struct {
	Date        time.Time
	Description string
	Type        string
	Category    string
	Account     string
	Amount      float64
}

type TransactionRepository interface {
	Save(transaction Transaction) error
	FindByID(userID, transactionID string) (*Transaction, error)
	FindByUser(userID string, filter TransactionFilter, limit, offset int) ([]Transaction, error)
	CountByUser(userID string, filter TransactionFilter) (int, error)
	Update(transaction Transaction) error
	Delete(userID, transactionID string) error

	BeginTransaction() (*sql.Tx, error)
	SaveWithTransaction(transaction Transaction, tx *sql.Tx) error

	ExistsByCategory(userID string, categoryID int) (bool, error)
	ExistsByAccount(userID string, accountID int) (bool, error)

	FindInRange(userID string, start, end time.Time) ([]Transaction, error)
	FindExportRowsInRange(userID string, start, end time.Time) ([]ExportRow, error)
	SumByType(userID, transactionType string) (float64, error)
	SumByTypeInRange(userID, transactionType string, start, end time.Time) (float64, error)
	SumDebitsByCategoryInRange(userID string, start, end time.Time) ([]CategoryAmount, error)
	SumDebitsForCategoryInRange(userID string, categoryID int, start, end time.Time) (float64, error)
}
