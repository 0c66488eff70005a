package domain

import "github.com/fintrackapp/fintrack/internal/finance/errors"

type Category struct {
	ID     int    `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError("Name must not be empty")
	}
	if len(c.Name) > 80 {
		return errors.NewValidationError("Name must be of length less than 80")
	}
	return nil
}

type CategoryRepository interface {
	Save(category *Category) error
	FindByUser(userID string) ([]Category, error)
	FindByID(userID string, categoryID int) (*Category, error)
	FindByName(userID, name string) (*Category, error)
	Update(category Category) error
	Delete(userID string, categoryID int) error
	ExistsByID(userID string, categoryID int) (bool, error)
	ExistsByName(userID, name string, excludeID int) (bool, error)
}
