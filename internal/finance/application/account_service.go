package application

import (
	"errors"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type AccountService struct {
	repo         domain.AccountRepository
	transactions domain.TransactionRepository
}

func NewAccountService(repo domain.AccountRepository, transactions domain.TransactionRepository) *AccountService {
	return &AccountService{repo: repo, transactions: transactions}
}

func (s *AccountService) GetUserAccounts(userID string) ([]domain.Account, error) {
	accounts, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *AccountService) GetAccount(userID string, accountID int) (*domain.Account, error) {
	return s.repo.FindByID(userID, accountID)
}

func (s *AccountService) CreateAccount(account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(account.UserID, account.Name, 0)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrConflict
	}
	return s.repo.Save(account)
}

func (s *AccountService) UpdateAccount(account domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(account.UserID, account.Name, account.ID)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrConflict
	}
	return s.repo.Update(account)
}

// DeleteAccount refuses to remove an account that still has transactions.
func (s *AccountService) DeleteAccount(userID string, accountID int) error {
	if _, err := s.repo.FindByID(userID, accountID); err != nil {
		return err
	}
	referenced, err := s.transactions.ExistsByAccount(userID, accountID)
	if err != nil {
		return err
	}
	if referenced {
		return financeErrors.ErrReferenced
	}
	return s.repo.Delete(userID, accountID)
}

func (s *AccountService) DoesAccountExist(userID string, accountID int) (bool, error) {
	return s.repo.ExistsByID(userID, accountID)
}

func (s *AccountService) FindOrCreateByName(userID, name string) (*domain.Account, error) {
	account, err := s.repo.FindByName(userID, name)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, financeErrors.ErrNotFound) {
		return nil, err
	}
	created := &domain.Account{UserID: userID, Name: name, Type: "imported"}
	if err := s.repo.Save(created); err != nil {
		return nil, err
	}
	return created, nil
}

// SeedDefaults creates the standard account set for users who have none.
// Idempotent: called at registration and again at login as a repair step.
func (s *AccountService) SeedDefaults(userID string) error {
	count, err := s.repo.CountByUser(userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, preset := range domain.DefaultAccounts {
		account := &domain.Account{UserID: userID, Name: preset.Name, Type: preset.Type}
		if err := s.repo.Save(account); err != nil {
			return err
		}
	}
	return nil
}
