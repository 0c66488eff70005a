package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Save(goal *domain.Goal) error {
	err := r.db.QueryRow(
		`INSERT INTO goals (user_id, name, kind, target_amount, month_tag, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		goal.UserID, goal.Name, goal.Kind, goal.TargetAmount, goal.MonthTag, goal.CategoryID,
	).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create goal: %v", err)
	}
	return nil
}

func (r *GoalRepository) FindByUser(userID string) ([]domain.Goal, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, kind, target_amount, month_tag, category_id, created_at
		 FROM goals WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoals(rows)
}

func (r *GoalRepository) FindByID(userID string, goalID int) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.QueryRow(
		`SELECT id, user_id, name, kind, target_amount, month_tag, category_id, created_at
		 FROM goals WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	).Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Kind, &goal.TargetAmount,
		&goal.MonthTag, &goal.CategoryID, &goal.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find goal: %v", err)
	}
	return &goal, nil
}

func (r *GoalRepository) FindForMonth(userID, monthTag string) ([]domain.Goal, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, kind, target_amount, month_tag, category_id, created_at
		 FROM goals
		 WHERE user_id = $1 AND (month_tag = $2 OR month_tag IS NULL)
		 ORDER BY created_at ASC`,
		userID, monthTag,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoals(rows)
}

func (r *GoalRepository) Update(goal domain.Goal) error {
	result, err := r.db.Exec(
		`UPDATE goals
		 SET name = $1, kind = $2, target_amount = $3, month_tag = $4, category_id = $5
		 WHERE id = $6 AND user_id = $7`,
		goal.Name, goal.Kind, goal.TargetAmount, goal.MonthTag, goal.CategoryID,
		goal.ID, goal.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *GoalRepository) Delete(userID string, goalID int) error {
	result, err := r.db.Exec(
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func scanGoals(rows *sql.Rows) ([]domain.Goal, error) {
	var goals []domain.Goal
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Kind, &goal.TargetAmount,
			&goal.MonthTag, &goal.CategoryID, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}
