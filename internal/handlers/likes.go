package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LikeRecipe adds one like and returns the new count.
func (a *API) LikeRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "recipe id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	likes, err := a.recipes.Like(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to like recipe")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "いいねを追加しました", "likes": likes})
}

// UnlikeRecipe removes one like, never going below zero.
func (a *API) UnlikeRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "recipe id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	likes, err := a.recipes.Unlike(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to unlike recipe")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "いいねを解除しました", "likes": likes})
}
