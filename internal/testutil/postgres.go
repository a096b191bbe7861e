// Package testutil provides the PostgreSQL fixture shared by store and
// handler integration tests. It uses the database described by POSTGRES_*
// (defaults match docker-compose) and falls back to a throwaway container
// when that database is unreachable. Tests are skipped when neither works.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"recipebox/internal/database"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// localDSN returns the connection string for the developer database.
func localDSN() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "recipebox")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "recipebox")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

// startContainer boots one postgres container per test binary. The
// testcontainers reaper removes it when the process exits.
func startContainer() (string, error) {
	containerOnce.Do(func() {
		ctx := context.Background()
		ctr, err := postgres.RunContainer(ctx,
			testcontainers.WithImage("postgres:16-alpine"),
			postgres.WithDatabase("recipebox"),
			postgres.WithUsername("recipebox"),
			postgres.WithPassword("changeme"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			containerErr = err
			return
		}
		containerDSN, containerErr = ctr.ConnectionString(ctx, "sslmode=disable")
	})
	return containerDSN, containerErr
}

func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// DB returns a migrated database connection for an integration test and
// registers a cleanup that closes it.
func DB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := open(localDSN())
	if err != nil {
		if os.Getenv("RECIPEBOX_NO_CONTAINERS") != "" {
			t.Skipf("skipping integration test: DB not reachable: %v", err)
		}
		testcontainers.SkipIfProviderIsNotHealthy(t)

		dsn, cerr := startContainer()
		if cerr != nil {
			t.Skipf("skipping integration test: no local DB (%v) and container failed: %v", err, cerr)
		}
		db, err = open(dsn)
		if err != nil {
			t.Skipf("skipping integration test: container DB not reachable: %v", err)
		}
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// CleanRecipes removes recipes by title. Comments go with them via cascade.
func CleanRecipes(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM recipes WHERE title = $1", title)
	}
}

// CountTitle returns how many recipes carry title. Test packages share the
// database, so assertions count their own rows rather than the whole table.
func CountTitle(t *testing.T, db *sql.DB, title string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM recipes WHERE title = $1", title).Scan(&n); err != nil {
		t.Fatalf("count recipes titled %q: %v", title, err)
	}
	return n
}

// categoryLockID keys the advisory lock that serializes tests touching
// category order across test packages.
const categoryLockID = 7_242_001

// SnapshotPositions takes the category advisory lock, records positions and
// restores them in cleanup before releasing the lock. The lock is held on
// its own connection for the rest of the test, which takes one slot of the
// pool.
func SnapshotPositions(t *testing.T, db *sql.DB) map[string]int {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("lock connection: %v", err)
	}
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", categoryLockID); err != nil {
		conn.Close()
		t.Fatalf("lock categories: %v", err)
	}

	rows, err := db.Query("SELECT name, position FROM categories")
	if err != nil {
		t.Fatalf("snapshot positions: %v", err)
	}
	defer rows.Close()

	snap := make(map[string]int)
	for rows.Next() {
		var name string
		var pos int
		if err := rows.Scan(&name, &pos); err != nil {
			t.Fatalf("scan position: %v", err)
		}
		snap[name] = pos
	}

	t.Cleanup(func() {
		for name, pos := range snap {
			db.Exec("UPDATE categories SET position = $1 WHERE name = $2", pos, name)
		}
		conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", categoryLockID)
		conn.Close()
	})
	return snap
}
