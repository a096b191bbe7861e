package handlers

import (
	"net/http"

	"recipebox/internal/apperr"
)

// ListCategories returns category names in display order.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := a.categories.Names(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch categories")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

type reorderRequest struct {
	NewOrder []string `json:"newOrder"`
}

// ReorderCategories applies a new category order in one transaction. The
// body must name every category exactly once.
func (a *API) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to update category order")
		return
	}
	if req.NewOrder == nil {
		writeError(w, r, apperr.Validation("Invalid category order").WithDetail("error", "newOrder is required"), "")
		return
	}

	if err := a.categories.Reorder(r.Context(), req.NewOrder); err != nil {
		writeError(w, r, err, "Failed to update category order")
		return
	}

	names, err := a.categories.Names(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "カテゴリーの順序を更新しました",
		"categories": names,
	})
}
