package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"recipebox/internal/database"
)

// Health reports whether the API can reach its database.
func Health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		now, err := database.Ping(ctx, db)
		if err != nil {
			slog.Error("health check failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": "Database connection failed",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"message":   "Database connection successful",
			"timestamp": now,
		})
	}
}
