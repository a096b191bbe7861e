package store

import (
	"context"
	"database/sql"
	"fmt"

	"recipebox/internal/models"
)

// CommentStore handles recipe comments. Comments are append-only.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, recipe_id, comment, created_at,
	TO_CHAR(created_at, 'YYYY-MM-DD HH24:MI:SS') AS timestamp`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	if err := scanner.Scan(&c.ID, &c.RecipeID, &c.Comment, &c.CreatedAt, &c.Timestamp); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create appends a comment to a recipe. The timestamp is assigned by the
// database. A recipe id with no row fails on the foreign key.
func (s *CommentStore) Create(ctx context.Context, recipeID int64, text string) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (recipe_id, comment)
		VALUES ($1, $2)
		RETURNING `+commentColumns,
		recipeID, text,
	)
	c, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// ListByRecipe returns a recipe's comments, newest first.
func (s *CommentStore) ListByRecipe(ctx context.Context, recipeID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE recipe_id = $1
		ORDER BY created_at DESC, id DESC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
