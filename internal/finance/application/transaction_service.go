package application

import (
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/google/uuid"
)

// PageSize is the fixed page size for transaction listings.
const PageSize = 10

type CategoryServiceInterface interface {
	GetUserCategories(userID string) ([]domain.Category, error)
	GetCategory(userID string, categoryID int) (*domain.Category, error)
	CreateCategory(category *domain.Category) error
	UpdateCategory(category domain.Category) error
	DeleteCategory(userID string, categoryID int) error
	DoesCategoryExist(userID string, categoryID int) (bool, error)
	FindOrCreateByName(userID, name string) (*domain.Category, error)
}

type AccountServiceInterface interface {
	GetUserAccounts(userID string) ([]domain.Account, error)
	GetAccount(userID string, accountID int) (*domain.Account, error)
	CreateAccount(account *domain.Account) error
	UpdateAccount(account domain.Account) error
	DeleteAccount(userID string, accountID int) error
	DoesAccountExist(userID string, accountID int) (bool, error)
	FindOrCreateByName(userID, name string) (*domain.Account, error)
	SeedDefaults(userID string) error
}

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
	accountService  AccountServiceInterface
}

func NewTransactionService(repo domain.TransactionRepository, categoryService CategoryServiceInterface, accountService AccountServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, categoryService: categoryService, accountService: accountService}
}

// checkReferences rejects a category or account the caller does not own.
// The schema does not enforce this, the service layer does.
func (s *TransactionService) checkReferences(transaction *domain.Transaction) error {
	if transaction.CategoryID != nil {
		exists, err := s.categoryService.DoesCategoryExist(transaction.UserID, *transaction.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidCategory
		}
	}
	if transaction.AccountID != nil {
		exists, err := s.accountService.DoesAccountExist(transaction.UserID, *transaction.AccountID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidAccount
		}
	}
	return nil
}

func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.checkReferences(transaction); err != nil {
		return err
	}
	return s.repo.Save(*transaction)
}

func (s *TransactionService) GetTransaction(userID, transactionID string) (*domain.Transaction, error) {
	return s.repo.FindByID(userID, transactionID)
}

// ListTransactions returns one page of filtered transactions, newest first,
// plus the total match count for pagination.
func (s *TransactionService) ListTransactions(userID string, filter domain.TransactionFilter, page int) ([]domain.Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	transactions, err := s.repo.FindByUser(userID, filter, PageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, total, nil
}

func (s *TransactionService) UpdateTransaction(transaction domain.Transaction) error {
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.checkReferences(&transaction); err != nil {
		return err
	}
	return s.repo.Update(transaction)
}

func (s *TransactionService) DeleteTransaction(userID, transactionID string) error {
	return s.repo.Delete(userID, transactionID)
}
