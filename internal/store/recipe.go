// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"recipebox/internal/apperr"
	"recipebox/internal/models"
)

// RecipeStore handles all recipe-related database operations.
type RecipeStore struct {
	db *sql.DB
}

// NewRecipeStore creates a new RecipeStore with the given database connection.
func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// recipeColumns lists the columns every recipe read returns, in scan order.
// Queries alias the recipe relation as r and the category as c.
const recipeColumns = `r.id, r.title, r.description, r.ingredients, r.image_url,
	r.likes, r.category_id, c.name`

// scanRecipe scans a recipe row. TEXT[] goes through the pgtype map since
// database/sql has no native array support.
func scanRecipe(m *pgtype.Map, scanner interface{ Scan(...any) error }) (*models.Recipe, error) {
	var r models.Recipe
	err := scanner.Scan(
		&r.ID, &r.Title, &r.Description, m.SQLScanner(&r.Ingredients), &r.ImageURL,
		&r.Likes, &r.CategoryID, &r.Category,
	)
	if err != nil {
		return nil, err
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	return &r, nil
}

// List returns every recipe with its category name, newest first.
func (s *RecipeStore) List(ctx context.Context) ([]models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes r
		JOIN categories c ON c.id = r.category_id
		ORDER BY r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	items := []models.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(m, rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// FindByID retrieves a single recipe.
func (s *RecipeStore) FindByID(ctx context.Context, id int64) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes r
		JOIN categories c ON c.id = r.category_id
		WHERE r.id = $1
	`, id)
	r, err := scanRecipe(pgtype.NewMap(), row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe by id: %w", err)
	}
	return r, nil
}

// Create inserts a recipe under the named category and returns it with its
// generated id. An unknown category fails without inserting anything.
func (s *RecipeStore) Create(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	catID, err := categoryID(ctx, s.db, in.Category)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		WITH r AS (
			INSERT INTO recipes (title, description, ingredients, image_url, category_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT `+recipeColumns+`
		FROM r
		JOIN categories c ON c.id = r.category_id
	`, in.Title, in.Description, ingredientsArg(in.Ingredients), in.ImageURL, catID)

	r, err := scanRecipe(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return r, nil
}

// Update replaces the editable fields of a recipe. A nil in.ImageURL keeps
// the stored image. The second return value is the image URL the row held
// before the update, so callers can clean up a replaced file.
func (s *RecipeStore) Update(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, *string, error) {
	catID, err := categoryID(ctx, s.db, in.Category)
	if err != nil {
		return nil, nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		WITH old AS (
			SELECT id, image_url FROM recipes WHERE id = $6 FOR UPDATE
		), r AS (
			UPDATE recipes SET
				title = $1, description = $2, ingredients = $3,
				image_url = COALESCE($4, old.image_url), category_id = $5
			FROM old
			WHERE recipes.id = old.id
			RETURNING recipes.id, recipes.title, recipes.description, recipes.ingredients,
				recipes.image_url, recipes.likes, recipes.category_id,
				old.image_url AS previous_image_url
		)
		SELECT `+recipeColumns+`, r.previous_image_url
		FROM r
		JOIN categories c ON c.id = r.category_id
	`, in.Title, in.Description, ingredientsArg(in.Ingredients), in.ImageURL, catID, id)

	var r models.Recipe
	var previous *string
	err = row.Scan(
		&r.ID, &r.Title, &r.Description, pgtype.NewMap().SQLScanner(&r.Ingredients), &r.ImageURL,
		&r.Likes, &r.CategoryID, &r.Category, &previous,
	)
	if err == sql.ErrNoRows {
		return nil, nil, apperr.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("update recipe: %w", err)
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	return &r, previous, nil
}

// Delete removes a recipe (its comments cascade) and returns the deleted
// row so the caller can clean up its image.
func (s *RecipeStore) Delete(ctx context.Context, id int64) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		WITH r AS (
			DELETE FROM recipes WHERE id = $1
			RETURNING *
		)
		SELECT `+recipeColumns+`
		FROM r
		JOIN categories c ON c.id = r.category_id
	`, id)
	r, err := scanRecipe(pgtype.NewMap(), row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, fmt.Errorf("delete recipe: %w", err)
	}
	return r, nil
}

// Like adds one like and returns the new count.
func (s *RecipeStore) Like(ctx context.Context, id int64) (int, error) {
	return s.updateLikes(ctx, `UPDATE recipes SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id)
}

// Unlike removes one like, never going below zero, and returns the new count.
func (s *RecipeStore) Unlike(ctx context.Context, id int64) (int, error) {
	return s.updateLikes(ctx, `UPDATE recipes SET likes = GREATEST(likes - 1, 0) WHERE id = $1 RETURNING likes`, id)
}

// updateLikes runs a single-statement counter update so concurrent likes
// never lose increments.
func (s *RecipeStore) updateLikes(ctx context.Context, query string, id int64) (int, error) {
	var likes int
	err := s.db.QueryRowContext(ctx, query, id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, apperr.NotFound("Recipe not found")
	}
	if err != nil {
		return 0, fmt.Errorf("update likes: %w", err)
	}
	return likes, nil
}

// Count returns the total number of recipes.
func (s *RecipeStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

// ingredientsArg guarantees a non-nil slice so the column gets '{}' rather
// than NULL.
func ingredientsArg(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
