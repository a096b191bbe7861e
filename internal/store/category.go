// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"recipebox/internal/apperr"
	"recipebox/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories in display order. Equal positions fall back
// to insertion order.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, position
		FROM categories
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Names returns category names in display order.
func (s *CategoryStore) Names(ctx context.Context) ([]string, error) {
	cats, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.CategoryNames(cats), nil
}

// FindIDByName resolves a category name. Unknown names are a referential
// error; categories are never created implicitly.
func (s *CategoryStore) FindIDByName(ctx context.Context, name string) (int64, error) {
	return categoryID(ctx, s.db, name)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func categoryID(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, apperr.Referential("Invalid category")
	}
	if err != nil {
		return 0, fmt.Errorf("find category %q: %w", name, err)
	}
	return id, nil
}

// Reorder assigns position i to the category named order[i]. order must be
// a permutation of every existing category name. All positions change in one
// transaction: on any error nothing is written.
func (s *CategoryStore) Reorder(ctx context.Context, order []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock every row so the permutation check and the updates see the same set.
	rows, err := tx.QueryContext(ctx, `SELECT name FROM categories ORDER BY id FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("lock categories: %w", err)
	}
	var existing []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("scan category: %w", err)
		}
		existing = append(existing, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock categories: %w", err)
	}

	if err := ValidatePermutation(existing, order); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `UPDATE categories SET position = $1 WHERE name = $2`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, name := range order {
		res, err := stmt.ExecContext(ctx, i, name)
		if err != nil {
			return fmt.Errorf("reorder category %q: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reorder category %q: %w", name, err)
		}
		if n != 1 {
			return fmt.Errorf("reorder category %q: updated %d rows", name, n)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

// ValidatePermutation checks that order names every category in existing
// exactly once.
func ValidatePermutation(existing, order []string) error {
	invalid := apperr.Validation("Invalid category order")
	if len(order) != len(existing) {
		return invalid.WithDetail("error", fmt.Sprintf("expected %d categories, got %d", len(existing), len(order)))
	}

	known := make(map[string]bool, len(existing))
	for _, name := range existing {
		known[name] = true
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if !known[name] {
			return invalid.WithDetail("error", fmt.Sprintf("unknown category %q", name))
		}
		if seen[name] {
			return invalid.WithDetail("error", fmt.Sprintf("duplicate category %q", name))
		}
		seen[name] = true
	}
	return nil
}
