// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/apperr"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

// commentRecipeID reads the recipe id from the {id} path parameter or, on
// the query-style route, from ?recipeId=.
func commentRecipeID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		raw = r.URL.Query().Get("recipeId")
	}
	if raw == "" {
		return 0, apperr.Validation("Recipe ID is required")
	}
	return parseID(raw, "recipe id")
}

// ListComments returns a recipe's comments, newest first.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	recipeID, err := commentRecipeID(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	items, err := a.comments.ListByRecipe(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, err, "Failed to fetch comments")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateComment appends a comment to a recipe. An unknown recipe id fails
// on the foreign key and is reported as a storage error.
func (a *API) CreateComment(w http.ResponseWriter, r *http.Request) {
	recipeID, err := commentRecipeID(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if msg := validateComment(req.Comment); msg != "" {
		writeError(w, r, apperr.Validation(msg), "")
		return
	}

	c, err := a.comments.Create(r.Context(), recipeID, req.Comment)
	if err != nil {
		writeError(w, r, err, "Failed to add comment")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
