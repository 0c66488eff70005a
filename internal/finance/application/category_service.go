package application

import (
	"errors"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type CategoryService struct {
	repo         domain.CategoryRepository
	transactions domain.TransactionRepository
}

func NewCategoryService(repo domain.CategoryRepository, transactions domain.TransactionRepository) *CategoryService {
	return &CategoryService{repo: repo, transactions: transactions}
}

func (s *CategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	categories, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(userID string, categoryID int) (*domain.Category, error) {
	return s.repo.FindByID(userID, categoryID)
}

func (s *CategoryService) CreateCategory(category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(category.UserID, category.Name, 0)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrConflict
	}
	return s.repo.Save(category)
}

func (s *CategoryService) UpdateCategory(category domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(category.UserID, category.Name, category.ID)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrConflict
	}
	return s.repo.Update(category)
}

// DeleteCategory refuses to remove a category that still has transactions.
func (s *CategoryService) DeleteCategory(userID string, categoryID int) error {
	if _, err := s.repo.FindByID(userID, categoryID); err != nil {
		return err
	}
	referenced, err := s.transactions.ExistsByCategory(userID, categoryID)
	if err != nil {
		return err
	}
	if referenced {
		return financeErrors.ErrReferenced
	}
	return s.repo.Delete(userID, categoryID)
}

func (s *CategoryService) DoesCategoryExist(userID string, categoryID int) (bool, error) {
	return s.repo.ExistsByID(userID, categoryID)
}

// FindOrCreateByName resolves an import row's category, creating it when the
// name is new for this user.
func (s *CategoryService) FindOrCreateByName(userID, name string) (*domain.Category, error) {
	category, err := s.repo.FindByName(userID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, financeErrors.ErrNotFound) {
		return nil, err
	}
	created := &domain.Category{UserID: userID, Name: name}
	if err := created.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(created); err != nil {
		return nil, err
	}
	return created, nil
}
