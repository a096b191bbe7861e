// store_test.go provides shared helpers for the store integration tests.
// Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"recipebox/internal/models"
	"recipebox/internal/testutil"
)

// testDB opens a migrated connection to the test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.DB(t)
}

// uniqueTitle returns a recipe title that no other test uses and removes the
// recipe when the test finishes.
func uniqueTitle(t *testing.T, db *sql.DB, prefix string) string {
	t.Helper()
	title := prefix + "-" + uuid.NewString()[:8]
	t.Cleanup(func() { testutil.CleanRecipes(t, db, title) })
	return title
}

// createRecipe inserts a recipe in the given category and fails the test on error.
func createRecipe(t *testing.T, s *RecipeStore, title, category string) *models.Recipe {
	t.Helper()
	r, err := s.Create(context.Background(), models.RecipeInput{
		Title:       title,
		Description: "テスト用のレシピ",
		Ingredients: []string{"卵", "ごはん"},
		Category:    category,
	})
	if err != nil {
		t.Fatalf("Create %q: %v", title, err)
	}
	return r
}
