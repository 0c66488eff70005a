package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code for duplicate unique keys.
// Services pre-check names, this is the backstop for concurrent writers.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category *domain.Category) error {
	err := r.db.QueryRow(
		`INSERT INTO categories (user_id, name) VALUES ($1, $2) RETURNING id`,
		category.UserID, category.Name,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return financeErrors.ErrConflict
		}
		return fmt.Errorf("could not create category: %v", err)
	}
	return nil
}

func (r *CategoryRepository) FindByUser(userID string) ([]domain.Category, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name FROM categories WHERE user_id = $1 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(userID string, categoryID int) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRow(
		`SELECT id, user_id, name FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	).Scan(&category.ID, &category.UserID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find category: %v", err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(userID, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRow(
		`SELECT id, user_id, name FROM categories WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&category.ID, &category.UserID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find category: %v", err)
	}
	return &category, nil
}

func (r *CategoryRepository) Update(category domain.Category) error {
	result, err := r.db.Exec(
		`UPDATE categories SET name = $1 WHERE id = $2 AND user_id = $3`,
		category.Name, category.ID, category.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return financeErrors.ErrConflict
		}
		return err
	}
	return requireRow(result)
}

func (r *CategoryRepository) Delete(userID string, categoryID int) error {
	result, err := r.db.Exec(
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *CategoryRepository) ExistsByID(userID string, categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) ExistsByName(userID, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = $1 AND name = $2 AND id != $3)`,
		userID, name, excludeID,
	).Scan(&exists)
	return exists, err
}
