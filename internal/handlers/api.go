// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API: recipes, categories,
// comments, likes and the suggestion relay.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"recipebox/internal/apperr"
	"recipebox/internal/middleware"
	"recipebox/internal/storage"
	"recipebox/internal/store"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// Suggester generates text for a prompt. *ai.Registry satisfies it.
type Suggester interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// API groups the HTTP handlers and their dependencies.
type API struct {
	categories *store.CategoryStore
	recipes    *store.RecipeStore
	comments   *store.CommentStore
	images     storage.Store
	suggester  Suggester
}

// NewAPI creates the handler group. images and suggester may be nil; uploads
// and suggestions then fail with a 500.
func NewAPI(categories *store.CategoryStore, recipes *store.RecipeStore, comments *store.CommentStore, images storage.Store, suggester Suggester) *API {
	return &API{
		categories: categories,
		recipes:    recipes,
		comments:   comments,
		images:     images,
		suggester:  suggester,
	}
}

// writeJSON writes data as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMessage writes a {message} body.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"message": msg})
}

// writeError maps err to its HTTP status and writes {message, ...detail}.
// Errors without a kind are storage failures reported under fallback.
// Storage and upstream causes are logged and surfaced only as "error".
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	ae := apperr.From(err, fallback)
	status := ae.Kind.Status()

	body := map[string]any{"message": ae.Message}
	for k, v := range ae.Detail {
		body[k] = v
	}

	if status >= http.StatusInternalServerError {
		slog.Error(ae.Message,
			"error", err,
			"kind", ae.Kind.String(),
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestID(r.Context()),
		)
		if ae.Err != nil {
			body["error"] = ae.Err.Error()
		}
	}

	writeJSON(w, status, body)
}

// decodeJSON reads a JSON request body into v. An empty body leaves v
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation("Invalid JSON body").WithDetail("error", err.Error())
	}
	return nil
}

// parseID parses a positive integer id from a path or query value.
func parseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid " + field)
	}
	return id, nil
}

// MethodNotAllowed answers known routes called with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not found")
}
