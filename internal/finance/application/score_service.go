package application

import (
	"errors"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

const (
	ScoreStatusOK        = "ok"
	ScoreStatusWarning   = "warning"
	ScoreStatusOverLimit = "over_limit"
)

// ScoreEntry is one category line of the monthly spending report.
type ScoreEntry struct {
	RuleID       int     `json:"rule_id"`
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	MonthlyLimit float64 `json:"monthly_limit"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Ratio        float64 `json:"ratio"`
	Status       string  `json:"status"`
}

type ScoreReport struct {
	Month   string       `json:"month"`
	Entries []ScoreEntry `json:"entries"`
}

type ScoreService struct {
	rules           domain.ScoreRuleRepository
	transactions    domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewScoreService(rules domain.ScoreRuleRepository, transactions domain.TransactionRepository, categoryService CategoryServiceInterface) *ScoreService {
	return &ScoreService{rules: rules, transactions: transactions, categoryService: categoryService}
}

// GetReport evaluates every active rule against the month's debit totals.
func (s *ScoreService) GetReport(userID, monthTag string) (*ScoreReport, error) {
	window := MonthWindowFromTag(monthTag)

	rules, err := s.rules.FindActiveWithCategory(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, 0, len(rules))
	for _, rule := range rules {
		spent, err := s.transactions.SumDebitsForCategoryInRange(userID, rule.CategoryID, window.Start, window.Next)
		if err != nil {
			return nil, err
		}

		ratio := 0.0
		if rule.MonthlyLimit > 0 {
			ratio = spent / rule.MonthlyLimit
		}

		entries = append(entries, ScoreEntry{
			RuleID:       rule.ID,
			CategoryID:   rule.CategoryID,
			CategoryName: rule.CategoryName,
			MonthlyLimit: rule.MonthlyLimit,
			Spent:        spent,
			Remaining:    rule.MonthlyLimit - spent,
			Ratio:        ratio,
			Status:       scoreStatus(ratio, rule.WarningPct),
		})
	}

	return &ScoreReport{Month: window.Tag, Entries: entries}, nil
}

// scoreStatus classifies a spend ratio. The warning boundary is inclusive,
// the limit boundary is not: spending exactly the limit is still a warning.
func scoreStatus(ratio, warningPct float64) string {
	switch {
	case ratio > 1:
		return ScoreStatusOverLimit
	case ratio >= warningPct:
		return ScoreStatusWarning
	default:
		return ScoreStatusOK
	}
}

// UpsertRule creates a rule for the category or overwrites the existing one.
func (s *ScoreService) UpsertRule(userID string, rule *domain.ScoreRule) (*domain.ScoreRule, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	owned, err := s.categoryService.DoesCategoryExist(userID, rule.CategoryID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, financeErrors.ErrInvalidCategory
	}

	rule.UserID = userID
	existing, err := s.rules.FindByCategory(userID, rule.CategoryID)
	if err != nil {
		if errors.Is(err, financeErrors.ErrNotFound) {
			if err := s.rules.Save(rule); err != nil {
				return nil, err
			}
			return rule, nil
		}
		return nil, err
	}

	existing.MonthlyLimit = rule.MonthlyLimit
	existing.WarningPct = rule.WarningPct
	existing.Active = rule.Active
	if err := s.rules.Update(*existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ScoreService) GetUserRules(userID string) ([]domain.ScoreRule, error) {
	rules, err := s.rules.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []domain.ScoreRule{}
	}
	return rules, nil
}

func (s *ScoreService) UpdateRule(userID string, rule *domain.ScoreRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	existing, err := s.rules.FindByID(userID, rule.ID)
	if err != nil {
		return err
	}
	existing.MonthlyLimit = rule.MonthlyLimit
	existing.WarningPct = rule.WarningPct
	existing.Active = rule.Active
	return s.rules.Update(*existing)
}

func (s *ScoreService) DeleteRule(userID string, ruleID int) error {
	return s.rules.Delete(userID, ruleID)
}
