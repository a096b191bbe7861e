package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

type seedRecipe struct {
	title       string
	description string
	ingredients []string
	likes       int
	category    string
}

var devRecipes = []seedRecipe{
	{"カレーライス", "スパイシーなカレーです。", []string{"玉ねぎ", "にんじん", "じゃがいも", "カレー粉"}, 10, "主菜"},
	{"オムライス", "ふわふわ卵のオムライス。", []string{"卵", "ごはん", "ケチャップ", "鶏肉"}, 5, "主菜"},
}

// Seed populates the database with sample recipes for development.
// Categories come from the migration; recipes are only inserted when the
// table is empty, so calling Seed repeatedly is safe.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM recipes").Scan(&count); err != nil {
		return fmt.Errorf("seed check recipes: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, r := range devRecipes {
		_, err := db.Exec(`
			INSERT INTO recipes (title, description, ingredients, likes, category_id)
			SELECT $1, $2, $3, $4, id FROM categories WHERE name = $5
		`, r.title, r.description, r.ingredients, r.likes, r.category)
		if err != nil {
			return fmt.Errorf("seed insert recipe %q: %w", r.title, err)
		}
	}

	slog.Info("database seeded with sample recipes", "count", len(devRecipes))
	return nil
}
