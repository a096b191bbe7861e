// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/apperr"
	"recipebox/internal/imaging"
	"recipebox/internal/models"
	"recipebox/internal/storage"
)

// maxUploadSize is the maximum allowed image size (10 MB).
const maxUploadSize = 10 << 20

// errTooLarge marks a request whose image exceeds maxUploadSize.
var errTooLarge = errors.New("image too large")

// recipeRequest is the JSON form of a recipe write. Ingredients may be a
// comma-separated string or an array of strings.
type recipeRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Ingredients json.RawMessage `json:"ingredients"`
	Category    string          `json:"category"`
}

// upload is an image part waiting to be stored.
type upload struct {
	data        []byte
	contentType string
}

// ListRecipes returns every recipe, newest first.
func (a *API) ListRecipes(w http.ResponseWriter, r *http.Request) {
	items, err := a.recipes.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch recipes")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetRecipe returns one recipe.
func (a *API) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "recipe id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	recipe, err := a.recipes.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch recipe")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// CreateRecipe adds a recipe from a JSON or multipart body and returns it
// with status 201.
func (a *API) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	in, img, ok := a.readRecipe(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if img != nil {
		url, err := a.storeImage(ctx, img)
		if err != nil {
			writeError(w, r, err, "Failed to upload image")
			return
		}
		in.ImageURL = &url
	}

	recipe, err := a.recipes.Create(ctx, in)
	if err != nil {
		a.discardImage(in.ImageURL)
		writeError(w, r, a.withCategories(ctx, err), "Failed to create recipe")
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

// UpdateRecipe replaces a recipe's fields. Without a new image the stored
// one is kept; a replaced image is removed from storage.
func (a *API) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "recipe id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	in, img, ok := a.readRecipe(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if img != nil {
		url, err := a.storeImage(ctx, img)
		if err != nil {
			writeError(w, r, err, "Failed to upload image")
			return
		}
		in.ImageURL = &url
	}

	recipe, previous, err := a.recipes.Update(ctx, id, in)
	if err != nil {
		a.discardImage(in.ImageURL)
		writeError(w, r, a.withCategories(ctx, err), "Failed to update recipe")
		return
	}
	if in.ImageURL != nil && previous != nil && *previous != *in.ImageURL {
		a.discardImage(previous)
	}
	writeJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe, its comments and its image.
func (a *API) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "recipe id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	deleted, err := a.recipes.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to delete recipe")
		return
	}
	a.discardImage(deleted.ImageURL)
	writeMessage(w, http.StatusOK, "レシピを削除しました")
}

// readRecipe parses and validates a recipe write. On failure it has already
// written the response and returns ok == false.
func (a *API) readRecipe(w http.ResponseWriter, r *http.Request) (in models.RecipeInput, img *upload, ok bool) {
	var err error
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		in, img, err = readMultipartRecipe(w, r)
	} else {
		in, err = readJSONRecipe(w, r)
	}
	if errors.Is(err, errTooLarge) {
		writeMessage(w, http.StatusRequestEntityTooLarge, "Image is too large (max 10 MB)")
		return in, nil, false
	}
	if err != nil {
		writeError(w, r, err, "Failed to read recipe")
		return in, nil, false
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}
	if msg := validateRecipe(in.Title, in.Description, in.Ingredients, in.Category); msg != "" {
		writeError(w, r, apperr.Validation(msg), "")
		return in, nil, false
	}
	return in, img, true
}

func readJSONRecipe(w http.ResponseWriter, r *http.Request) (models.RecipeInput, error) {
	var req recipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return models.RecipeInput{}, err
	}
	ingredients, err := parseIngredientsJSON(req.Ingredients)
	if err != nil {
		return models.RecipeInput{}, err
	}
	return models.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: ingredients,
		Category:    req.Category,
	}, nil
}

// parseIngredientsJSON accepts "a, b" or ["a", "b"]; null or absent means none.
func parseIngredientsJSON(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return models.ParseIngredients(s), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return models.CleanIngredients(list), nil
	}
	return nil, apperr.Validation("Invalid ingredients").
		WithDetail("error", "ingredients must be a comma-separated string or an array of strings")
}

func readMultipartRecipe(w http.ResponseWriter, r *http.Request) (models.RecipeInput, *upload, error) {
	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return models.RecipeInput{}, nil, errTooLarge
		}
		return models.RecipeInput{}, nil, apperr.Validation("Invalid form data").WithDetail("error", err.Error())
	}

	in := models.RecipeInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Ingredients: models.ParseIngredients(r.FormValue("ingredients")),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, apperr.Validation("Invalid image").WithDetail("error", err.Error())
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return in, nil, errTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return in, nil, apperr.Storage("Failed to read image", err)
	}
	if len(data) > maxUploadSize {
		return in, nil, errTooLarge
	}

	info, err := imaging.Inspect(data)
	if err != nil {
		return in, nil, apperr.Validation("Unsupported image").WithDetail("error", err.Error())
	}
	return in, &upload{data: data, contentType: info.ContentType}, nil
}

// storeImage saves an upload under a fresh key and returns its URL.
func (a *API) storeImage(ctx context.Context, img *upload) (string, error) {
	if a.images == nil {
		return "", apperr.Storage("Image storage is not configured", nil)
	}
	key := storage.NewKey(time.Now(), storage.ExtensionFromType(img.contentType))
	url, err := a.images.Put(ctx, key, img.contentType, bytes.NewReader(img.data), int64(len(img.data)))
	if err != nil {
		return "", apperr.Storage("Failed to upload image", err)
	}
	return url, nil
}

// discardImage removes a stored image best-effort. It runs detached from the
// request so a dropped client does not leave the file behind.
func (a *API) discardImage(url *string) {
	if url == nil || *url == "" || a.images == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.images.Remove(ctx, *url); err != nil {
		slog.Warn("image delete failed", "error", err, "url", *url)
	}
}

// withCategories attaches the valid category names to a referential error
// so clients can correct the request.
func (a *API) withCategories(ctx context.Context, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindReferential {
		return err
	}
	names, nerr := a.categories.Names(ctx)
	if nerr != nil {
		slog.Warn("list categories for diagnostic failed", "error", nerr)
		return err
	}
	return ae.WithDetail("availableCategories", names)
}
