package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/hogiahlang/src/model"
	"github.com/username/hogiahlang/src/models"
)

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	db *sql.DB
}

// NewCategoryService creates a new instance of the category service.
func NewCategoryService(db *sql.DB) CategoryService {
	return &categoryServiceImpl{db: db}
}

func (s *categoryServiceImpl) ListCategories(userID int64) ([]string, error) {
	categories, err := model.GetCategories(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for user %d: %w", userID, err)
	}
	return categories, nil
}

// AddCategory registers a category name for the user. Adding a name that
// already exists is a no-op.
func (s *categoryServiceImpl) AddCategory(userID int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return &models.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if err := model.AddCategory(s.db, userID, name); err != nil {
		return fmt.Errorf("failed to add category %q: %w", name, err)
	}
	return nil
}
