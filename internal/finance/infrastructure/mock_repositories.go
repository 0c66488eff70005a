package infrastructure

import (
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

// In-memory repositories for service tests. They mirror the SQL versions'
// ownership scoping and sentinel errors but nothing else.

type MockCategoryRepository struct {
	Categories []domain.Category
	NextID     int
}

func (m *MockCategoryRepository) Save(category *domain.Category) error {
	exists, _ := m.ExistsByName(category.UserID, category.Name, 0)
	if exists {
		return financeErrors.ErrConflict
	}
	m.NextID++
	category.ID = m.NextID
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryRepository) FindByUser(userID string) ([]domain.Category, error) {
	var found []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			found = append(found, category)
		}
	}
	return found, nil
}

func (m *MockCategoryRepository) FindByID(userID string, categoryID int) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].UserID == userID && m.Categories[i].ID == categoryID {
			return &m.Categories[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockCategoryRepository) FindByName(userID, name string) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].UserID == userID && m.Categories[i].Name == name {
			return &m.Categories[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockCategoryRepository) Update(category domain.Category) error {
	for i := range m.Categories {
		if m.Categories[i].UserID == category.UserID && m.Categories[i].ID == category.ID {
			m.Categories[i] = category
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockCategoryRepository) Delete(userID string, categoryID int) error {
	for i := range m.Categories {
		if m.Categories[i].UserID == userID && m.Categories[i].ID == categoryID {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockCategoryRepository) ExistsByID(userID string, categoryID int) (bool, error) {
	for _, category := range m.Categories {
		if category.UserID == userID && category.ID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) ExistsByName(userID, name string, excludeID int) (bool, error) {
	for _, category := range m.Categories {
		if category.UserID == userID && category.Name == name && category.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type MockAccountRepository struct {
	Accounts []domain.Account
	NextID   int
}

func (m *MockAccountRepository) Save(account *domain.Account) error {
	exists, _ := m.ExistsByName(account.UserID, account.Name, 0)
	if exists {
		return financeErrors.ErrConflict
	}
	m.NextID++
	account.ID = m.NextID
	m.Accounts = append(m.Accounts, *account)
	return nil
}

func (m *MockAccountRepository) FindByUser(userID string) ([]domain.Account, error) {
	var found []domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			found = append(found, account)
		}
	}
	return found, nil
}

func (m *MockAccountRepository) FindByID(userID string, accountID int) (*domain.Account, error) {
	for i := range m.Accounts {
		if m.Accounts[i].UserID == userID && m.Accounts[i].ID == accountID {
			return &m.Accounts[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockAccountRepository) FindByName(userID, name string) (*domain.Account, error) {
	for i := range m.Accounts {
		if m.Accounts[i].UserID == userID && m.Accounts[i].Name == name {
			return &m.Accounts[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockAccountRepository) Update(account domain.Account) error {
	for i := range m.Accounts {
		if m.Accounts[i].UserID == account.UserID && m.Accounts[i].ID == account.ID {
			m.Accounts[i] = account
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockAccountRepository) Delete(userID string, accountID int) error {
	for i := range m.Accounts {
		if m.Accounts[i].UserID == userID && m.Accounts[i].ID == accountID {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockAccountRepository) ExistsByID(userID string, accountID int) (bool, error) {
	for _, account := range m.Accounts {
		if account.UserID == userID && account.ID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) ExistsByName(userID, name string, excludeID int) (bool, error) {
	for _, account := range m.Accounts {
		if account.UserID == userID && account.Name == name && account.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) CountByUser(userID string) (int, error) {
	count := 0
	for _, account := range m.Accounts {
		if account.UserID == userID {
			count++
		}
	}
	return count, nil
}

type MockGoalRepository struct {
	Goals  []domain.Goal
	NextID int
}

func (m *MockGoalRepository) Save(goal *domain.Goal) error {
	m.NextID++
	goal.ID = m.NextID
	m.Goals = append(m.Goals, *goal)
	return nil
}

func (m *MockGoalRepository) FindByUser(userID string) ([]domain.Goal, error) {
	var found []domain.Goal
	for _, goal := range m.Goals {
		if goal.UserID == userID {
			found = append(found, goal)
		}
	}
	return found, nil
}

func (m *MockGoalRepository) FindByID(userID string, goalID int) (*domain.Goal, error) {
	for i := range m.Goals {
		if m.Goals[i].UserID == userID && m.Goals[i].ID == goalID {
			return &m.Goals[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockGoalRepository) FindForMonth(userID, monthTag string) ([]domain.Goal, error) {
	var found []domain.Goal
	for _, goal := range m.Goals {
		if goal.UserID != userID {
			continue
		}
		if goal.MonthTag == nil || *goal.MonthTag == monthTag {
			found = append(found, goal)
		}
	}
	return found, nil
}

func (m *MockGoalRepository) Update(goal domain.Goal) error {
	for i := range m.Goals {
		if m.Goals[i].UserID == goal.UserID && m.Goals[i].ID == goal.ID {
			m.Goals[i] = goal
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockGoalRepository) Delete(userID string, goalID int) error {
	for i := range m.Goals {
		if m.Goals[i].UserID == userID && m.Goals[i].ID == goalID {
			m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

type MockScoreRuleRepository struct {
	Rules         []domain.ScoreRule
	CategoryNames map[int]string
	NextID        int
}

func (m *MockScoreRuleRepository) Save(rule *domain.ScoreRule) error {
	for _, existing := range m.Rules {
		if existing.UserID == rule.UserID && existing.CategoryID == rule.CategoryID {
			return financeErrors.ErrConflict
		}
	}
	m.NextID++
	rule.ID = m.NextID
	m.Rules = append(m.Rules, *rule)
	return nil
}

func (m *MockScoreRuleRepository) FindByUser(userID string) ([]domain.ScoreRule, error) {
	var found []domain.ScoreRule
	for _, rule := range m.Rules {
		if rule.UserID == userID {
			found = append(found, rule)
		}
	}
	return found, nil
}

func (m *MockScoreRuleRepository) FindByID(userID string, ruleID int) (*domain.ScoreRule, error) {
	for i := range m.Rules {
		if m.Rules[i].UserID == userID && m.Rules[i].ID == ruleID {
			return &m.Rules[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockScoreRuleRepository) FindByCategory(userID string, categoryID int) (*domain.ScoreRule, error) {
	for i := range m.Rules {
		if m.Rules[i].UserID == userID && m.Rules[i].CategoryID == categoryID {
			return &m.Rules[i], nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockScoreRuleRepository) FindActiveWithCategory(userID string) ([]domain.ScoreRuleWithCategory, error) {
	var found []domain.ScoreRuleWithCategory
	for _, rule := range m.Rules {
		if rule.UserID == userID && rule.Active {
			found = append(found, domain.ScoreRuleWithCategory{
				ScoreRule:    rule,
				CategoryName: m.CategoryNames[rule.CategoryID],
			})
		}
	}
	return found, nil
}

func (m *MockScoreRuleRepository) Update(rule domain.ScoreRule) error {
	for i := range m.Rules {
		if m.Rules[i].UserID == rule.UserID && m.Rules[i].ID == rule.ID {
			m.Rules[i] = rule
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockScoreRuleRepository) Delete(userID string, ruleID int) error {
	for i := range m.Rules {
		if m.Rules[i].UserID == userID && m.Rules[i].ID == ruleID {
			m.Rules = append(m.Rules[:i], m.Rules[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}
