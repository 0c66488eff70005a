package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type ScoreRuleRepository struct {
	db *sql.DB
}

func NewScoreRuleRepository(db *sql.DB) *ScoreRuleRepository {
	return &ScoreRuleRepository{db: db}
}

func (r *ScoreRuleRepository) Save(rule *domain.ScoreRule) error {
	err := r.db.QueryRow(
		`INSERT INTO score_rules (user_id, category_id, monthly_limit, warning_pct, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		rule.UserID, rule.CategoryID, rule.MonthlyLimit, rule.WarningPct, rule.Active,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return financeErrors.ErrConflict
		}
		return fmt.Errorf("could not create score rule: %v", err)
	}
	return nil
}

func (r *ScoreRuleRepository) FindByUser(userID string) ([]domain.ScoreRule, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, monthly_limit, warning_pct, active, created_at, updated_at
		 FROM score_rules WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.ScoreRule
	for rows.Next() {
		var rule domain.ScoreRule
		if err := rows.Scan(&rule.ID, &rule.UserID, &rule.CategoryID, &rule.MonthlyLimit,
			&rule.WarningPct, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *ScoreRuleRepository) FindByID(userID string, ruleID int) (*domain.ScoreRule, error) {
	var rule domain.ScoreRule
	err := r.db.QueryRow(
		`SELECT id, user_id, category_id, monthly_limit, warning_pct, active, created_at, updated_at
		 FROM score_rules WHERE id = $1 AND user_id = $2`,
		ruleID, userID,
	).Scan(&rule.ID, &rule.UserID, &rule.CategoryID, &rule.MonthlyLimit,
		&rule.WarningPct, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find score rule: %v", err)
	}
	return &rule, nil
}

func (r *ScoreRuleRepository) FindByCategory(userID string, categoryID int) (*domain.ScoreRule, error) {
	var rule domain.ScoreRule
	err := r.db.QueryRow(
		`SELECT id, user_id, category_id, monthly_limit, warning_pct, active, created_at, updated_at
		 FROM score_rules WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID,
	).Scan(&rule.ID, &rule.UserID, &rule.CategoryID, &rule.MonthlyLimit,
		&rule.WarningPct, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find score rule: %v", err)
	}
	return &rule, nil
}

func (r *ScoreRuleRepository) FindActiveWithCategory(userID string) ([]domain.ScoreRuleWithCategory, error) {
	rows, err := r.db.Query(
		`SELECT s.id, s.user_id, s.category_id, s.monthly_limit, s.warning_pct, s.active,
		        s.created_at, s.updated_at, c.name
		 FROM score_rules s
		 JOIN categories c ON c.id = s.category_id
		 WHERE s.user_id = $1 AND s.active = TRUE
		 ORDER BY c.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.ScoreRuleWithCategory
	for rows.Next() {
		var rule domain.ScoreRuleWithCategory
		if err := rows.Scan(&rule.ID, &rule.UserID, &rule.CategoryID, &rule.MonthlyLimit,
			&rule.WarningPct, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt, &rule.CategoryName); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *ScoreRuleRepository) Update(rule domain.ScoreRule) error {
	result, err := r.db.Exec(
		`UPDATE score_rules
		 SET monthly_limit = $1, warning_pct = $2, active = $3, updated_at = NOW()
		 WHERE id = $4 AND user_id = $5`,
		rule.MonthlyLimit, rule.WarningPct, rule.Active, rule.ID, rule.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *ScoreRuleRepository) Delete(userID string, ruleID int) error {
	result, err := r.db.Exec(
		`DELETE FROM score_rules WHERE id = $1 AND user_id = $2`,
		ruleID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}
