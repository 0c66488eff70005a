package domain

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/errors"
)

const (
	// GoalMonthlySpend caps total debits in the month.
	GoalMonthlySpend = "monthly_spend"
	// GoalSavings targets credits minus debits in the month.
	GoalSavings = "savings"
	// GoalCategorySpend caps debits for one category in the month.
	GoalCategorySpend = "category_spend"
)

func IsValidGoalKind(kind string) bool {
	switch kind {
	case GoalMonthlySpend, GoalSavings, GoalCategorySpend:
		return true
	}
	return false
}

type Goal struct {
	ID           int       `json:"id"`
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	TargetAmount float64   `json:"target_amount"`
	MonthTag     *string   `json:"month_tag,omitempty"`
	CategoryID   *int      `json:"category_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (g *Goal) Validate() error {
	if g.Name == "" {
		return errors.NewValidationError("Name must not be empty")
	}
	if !IsValidGoalKind(g.Kind) {
		return errors.NewValidationError("Kind must be 'monthly_spend', 'savings' or 'category_spend'")
	}
	if g.TargetAmount <= 0 {
		return errors.NewValidationError("Target amount must be greater than zero")
	}
	if g.Kind == GoalCategorySpend && g.CategoryID == nil {
		return errors.NewValidationError("Category is required for a category spend goal")
	}
	if g.MonthTag != nil {
		if _, err := time.Parse("2006-01", *g.MonthTag); err != nil {
			return errors.NewValidationError("Month tag must use the YYYY-MM format")
		}
	}
	return nil
}

type GoalRepository interface {
	Save(goal *Goal) error
	FindByUser(userID string) ([]Goal, error)
	FindByID(userID string, goalID int) (*Goal, error)
	// FindForMonth returns goals tagged with the month plus untagged ones.
	FindForMonth(userID, monthTag string) ([]Goal, error)
	Update(goal Goal) error
	Delete(userID string, goalID int) error
}
