package handlers

import (
	"net/http"

	"recipebox/internal/apperr"
)

type suggestRequest struct {
	Prompt string `json:"prompt"`
}

// Suggest relays a prompt to the configured text-generation provider and
// returns its raw answer. Empty prompts never reach the provider.
func (a *API) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if msg := validatePrompt(req.Prompt); msg != "" {
		writeError(w, r, apperr.Validation(msg), "")
		return
	}
	if a.suggester == nil {
		writeError(w, r, apperr.Upstream("Failed to get suggestion", nil), "")
		return
	}

	text, err := a.suggester.Generate(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, r, apperr.Upstream("Failed to get suggestion", err), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"suggestion": text})
}
