package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/hogiahlang/src/database"
	"github.com/username/hogiahlang/src/model"
	"github.com/username/hogiahlang/src/models"
)

func newCategoryService(t *testing.T) (CategoryService, int64) {
	t.Helper()
	database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	db := database.DB
	t.Cleanup(func() { db.Close() })

	userID, err := model.AddUser(db, "tester")
	require.NoError(t, err)

	return NewCategoryService(db), userID
}

func TestAddCategory_RejectsEmptyName(t *testing.T) {
	svc, userID := newCategoryService(t)

	err := svc.AddCategory(userID, "   ")
	assert.True(t, models.IsValidation(err))
}

func TestAddCategory_DuplicateIsNoOp(t *testing.T) {
	svc, userID := newCategoryService(t)

	require.NoError(t, svc.AddCategory(userID, "Stock"))
	require.NoError(t, svc.AddCategory(userID, "Stock"))

	categories, err := svc.ListCategories(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stock"}, categories)
}
