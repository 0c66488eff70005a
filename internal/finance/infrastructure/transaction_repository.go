package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions (id, user_id, description, amount, type, date, category_id, account_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transaction.ID, transaction.UserID, transaction.Description, transaction.Amount,
		transaction.Type, transaction.Date, transaction.CategoryID, transaction.AccountID,
	)
	return err
}

func (r *TransactionRepository) SaveWithTransaction(transaction domain.Transaction, tx *sql.Tx) error {
	_, err := tx.Exec(
		`INSERT INTO transactions (id, user_id, description, amount, type, date, category_id, account_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transaction.ID, transaction.UserID, transaction.Description, transaction.Amount,
		transaction.Type, transaction.Date, transaction.CategoryID, transaction.AccountID,
	)
	return err
}

func (r *TransactionRepository) BeginTransaction() (*sql.Tx, error) {
	return r.db.Begin()
}

func (r *TransactionRepository) FindByID(userID, transactionID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := r.db.QueryRow(
		`SELECT id, user_id, description, amount, type, date, category_id, account_id
		 FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	).Scan(&transaction.ID, &transaction.UserID, &transaction.Description, &transaction.Amount,
		&transaction.Type, &transaction.Date, &transaction.CategoryID, &transaction.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find transaction: %v", err)
	}
	return &transaction, nil
}

// filterClauses builds WHERE conditions for the optional listing filters.
// The owner condition always comes first; placeholders continue from $2.
func filterClauses(filter domain.TransactionFilter) (string, []interface{}) {
	clauses := []string{"user_id = $1"}
	var args []interface{}
	next := 2

	add := func(clause string, value interface{}) {
		clauses = append(clauses, fmt.Sprintf(clause, next))
		args = append(args, value)
		next++
	}

	if domain.IsValidTransactionType(filter.Type) {
		add("type = $%d", filter.Type)
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		add("account_id = $%d", *filter.AccountID)
	}
	if filter.StartDate != nil {
		add("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("date < $%d", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		add("amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("amount <= $%d", *filter.MaxAmount)
	}

	return strings.Join(clauses, " AND "), args
}

func (r *TransactionRepository) FindByUser(userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(
		`SELECT id, user_id, description, amount, type, date, category_id, account_id
		 FROM transactions WHERE %s
		 ORDER BY date DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)+2, len(args)+3,
	)
	args = append([]interface{}{userID}, args...)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) CountByUser(userID string, filter domain.TransactionFilter) (int, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM transactions WHERE %s`, where)
	args = append([]interface{}{userID}, args...)

	var count int
	err := r.db.QueryRow(query, args...).Scan(&count)
	return count, err
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	result, err := r.db.Exec(
		`UPDATE transactions
		 SET description = $1, amount = $2, type = $3, date = $4, category_id = $5, account_id = $6
		 WHERE id = $7 AND user_id = $8`,
		transaction.Description, transaction.Amount, transaction.Type, transaction.Date,
		transaction.CategoryID, transaction.AccountID, transaction.ID, transaction.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *TransactionRepository) Delete(userID, transactionID string) error {
	result, err := r.db.Exec(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *TransactionRepository) ExistsByCategory(userID string, categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE user_id = $1 AND category_id = $2)`,
		userID, categoryID,
	).Scan(&exists)
	return exists, err
}

func (r *TransactionRepository) ExistsByAccount(userID string, accountID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE user_id = $1 AND account_id = $2)`,
		userID, accountID,
	).Scan(&exists)
	return exists, err
}

func (r *TransactionRepository) FindInRange(userID string, start, end time.Time) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, description, amount, type, date, category_id, account_id
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) FindExportRowsInRange(userID string, start, end time.Time) ([]domain.ExportRow, error) {
	rows, err := r.db.Query(
		`SELECT t.date, t.description, t.type,
		        COALESCE(c.name, ''), COALESCE(a.name, ''), t.amount
		 FROM transactions t
		 LEFT JOIN categories c ON c.id = t.category_id
		 LEFT JOIN accounts a ON a.id = t.account_id
		 WHERE t.user_id = $1 AND t.date >= $2 AND t.date < $3
		 ORDER BY t.date ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exportRows []domain.ExportRow
	for rows.Next() {
		var row domain.ExportRow
		if err := rows.Scan(&row.Date, &row.Description, &row.Type, &row.Category, &row.Account, &row.Amount); err != nil {
			return nil, err
		}
		exportRows = append(exportRows, row)
	}
	return exportRows, rows.Err()
}

func (r *TransactionRepository) SumByType(userID, transactionType string) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1 AND type = $2`,
		userID, transactionType,
	).Scan(&total)
	return total, err
}

func (r *TransactionRepository) SumByTypeInRange(userID, transactionType string, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE user_id = $1 AND type = $2 AND date >= $3 AND date < $4`,
		userID, transactionType, start, end,
	).Scan(&total)
	return total, err
}

func (r *TransactionRepository) SumDebitsByCategoryInRange(userID string, start, end time.Time) ([]domain.CategoryAmount, error) {
	rows, err := r.db.Query(
		`SELECT c.id, c.name, COALESCE(SUM(t.amount), 0) AS total
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id
		 WHERE t.user_id = $1 AND t.type = $2 AND t.date >= $3 AND t.date < $4
		 GROUP BY c.id, c.name
		 HAVING COALESCE(SUM(t.amount), 0) > 0
		 ORDER BY c.name ASC`,
		userID, domain.TypeDebit, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amounts []domain.CategoryAmount
	for rows.Next() {
		var amount domain.CategoryAmount
		if err := rows.Scan(&amount.CategoryID, &amount.CategoryName, &amount.Amount); err != nil {
			return nil, err
		}
		amounts = append(amounts, amount)
	}
	return amounts, rows.Err()
}

func (r *TransactionRepository) SumDebitsForCategoryInRange(userID string, categoryID int, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE user_id = $1 AND type = $2 AND category_id = $3 AND date >= $4 AND date < $5`,
		userID, domain.TypeDebit, categoryID, start, end,
	).Scan(&total)
	return total, err
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Description,
			&transaction.Amount, &transaction.Type, &transaction.Date,
			&transaction.CategoryID, &transaction.AccountID); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// requireRow turns a zero-row write into not-found, which is how unowned ids
// surface from tenancy-scoped UPDATE/DELETE statements.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrNotFound
	}
	return nil
}
