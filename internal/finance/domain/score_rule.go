package domain

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/errors"
)

// ScoreRule is a per-category monthly spending cap with a warning threshold.
// One rule per category per user.
type ScoreRule struct {
	ID           int       `json:"id"`
	UserID       string    `json:"-"`
	CategoryID   int       `json:"category_id"`
	MonthlyLimit float64   `json:"monthly_limit"`
	WarningPct   float64   `json:"warning_pct"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *ScoreRule) Validate() error {
	if r.MonthlyLimit <= 0 {
		return errors.NewValidationError("Monthly limit must be greater than zero")
	}
	if r.WarningPct <= 0 || r.WarningPct >= 1.5 {
		return errors.NewValidationError("Warning threshold must be between 0 and 1.5, e.g. 0.80")
	}
	return nil
}

// ScoreRuleWithCategory pairs an active rule with its category name for the
// monthly report.
type ScoreRuleWithCategory struct {
	ScoreRule
	CategoryName string `json:"category_name"`
}

type ScoreRuleRepository interface {
	Save(rule *ScoreRule) error
	FindByUser(userID string) ([]ScoreRule, error)
	FindByID(userID string, ruleID int) (*ScoreRule, error)
	FindByCategory(userID string, categoryID int) (*ScoreRule, error)
	FindActiveWithCategory(userID string) ([]ScoreRuleWithCategory, error)
	Update(rule ScoreRule) error
	Delete(userID string, ruleID int) error
}
