package application

import (
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type GoalService struct {
	repo            domain.GoalRepository
	categoryService CategoryServiceInterface
}

func NewGoalService(repo domain.GoalRepository, categoryService CategoryServiceInterface) *GoalService {
	return &GoalService{repo: repo, categoryService: categoryService}
}

func (s *GoalService) checkCategory(goal *domain.Goal) error {
	if goal.CategoryID == nil {
		return nil
	}
	exists, err := s.categoryService.DoesCategoryExist(goal.UserID, *goal.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidCategory
	}
	return nil
}

func (s *GoalService) GetUserGoals(userID string) ([]domain.Goal, error) {
	goals, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, nil
}

func (s *GoalService) GetGoal(userID string, goalID int) (*domain.Goal, error) {
	return s.repo.FindByID(userID, goalID)
}

func (s *GoalService) CreateGoal(goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	if err := s.checkCategory(goal); err != nil {
		return err
	}
	return s.repo.Save(goal)
}

func (s *GoalService) UpdateGoal(goal domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	if err := s.checkCategory(&goal); err != nil {
		return err
	}
	return s.repo.Update(goal)
}

func (s *GoalService) DeleteGoal(userID string, goalID int) error {
	return s.repo.Delete(userID, goalID)
}
