package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(account *domain.Account) error {
	err := r.db.QueryRow(
		`INSERT INTO accounts (user_id, name, type) VALUES ($1, $2, $3) RETURNING id`,
		account.UserID, account.Name, account.Type,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return financeErrors.ErrConflict
		}
		return fmt.Errorf("could not create account: %v", err)
	}
	return nil
}

func (r *AccountRepository) FindByUser(userID string) ([]domain.Account, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, type FROM accounts WHERE user_id = $1 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Type); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) FindByID(userID string, accountID int) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		`SELECT id, user_id, name, type FROM accounts WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	).Scan(&account.ID, &account.UserID, &account.Name, &account.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find account: %v", err)
	}
	return &account, nil
}

func (r *AccountRepository) FindByName(userID, name string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		`SELECT id, user_id, name, type FROM accounts WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&account.ID, &account.UserID, &account.Name, &account.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find account: %v", err)
	}
	return &account, nil
}

func (r *AccountRepository) Update(account domain.Account) error {
	result, err := r.db.Exec(
		`UPDATE accounts SET name = $1, type = $2 WHERE id = $3 AND user_id = $4`,
		account.Name, account.Type, account.ID, account.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return financeErrors.ErrConflict
		}
		return err
	}
	return requireRow(result)
}

func (r *AccountRepository) Delete(userID string, accountID int) error {
	result, err := r.db.Exec(
		`DELETE FROM accounts WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *AccountRepository) ExistsByID(userID string, accountID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND user_id = $2)`,
		accountID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) ExistsByName(userID, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE user_id = $1 AND name = $2 AND id != $3)`,
		userID, name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) CountByUser(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM accounts WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}
