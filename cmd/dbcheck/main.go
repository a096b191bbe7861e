// Command dbcheck connects to the configured database and prints what it
// finds: server time, tables, categories in display order and the recipe
// count. It does not run migrations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("database check failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now, err := database.Ping(ctx, db)
	if err != nil {
		return err
	}
	fmt.Printf("connected, server time %s\n", now.Format(time.RFC3339))

	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	fmt.Println("tables:")
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan table: %w", err)
		}
		fmt.Printf("  %s\n", name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	categories, err := store.NewCategoryStore(db).List(ctx)
	if err != nil {
		return err
	}
	fmt.Println("categories:")
	for _, c := range categories {
		fmt.Printf("  %d. %s (id %d)\n", c.Position, c.Name, c.ID)
	}

	count, err := store.NewRecipeStore(db).Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("recipes: %d\n", count)
	return nil
}
