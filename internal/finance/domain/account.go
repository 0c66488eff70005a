package domain

import "github.com/fintrackapp/fintrack/internal/finance/errors"

type Account struct {
	ID     int    `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.NewValidationError("Name must not be empty")
	}
	if a.Type == "" {
		return errors.NewValidationError("Type must not be empty")
	}
	if len(a.Name) > 80 {
		return errors.NewValidationError("Name must be of length less than 80")
	}
	return nil
}

// DefaultAccount is one of the accounts seeded for every new user.
type DefaultAccount struct {
	Name string
	Type string
}

// DefaultAccounts are created at registration and re-seeded at login when the
// user has none at all.
var DefaultAccounts = []DefaultAccount{
	{Name: "Wallet", Type: "wallet"},
	{Name: "Bank", Type: "bank"},
	{Name: "Card", Type: "card"},
	{Name: "Reserve", Type: "reserve"},
}

type AccountRepository interface {
	Save(account *Account) error
	FindByUser(userID string) ([]Account, error)
	FindByID(userID string, accountID int) (*Account, error)
	FindByName(userID, name string) (*Account, error)
	Update(account Account) error
	Delete(userID string, accountID int) error
	ExistsByID(userID string, accountID int) (bool, error)
	ExistsByName(userID, name string, excludeID int) (bool, error)
	CountByUser(userID string) (int, error)
}
