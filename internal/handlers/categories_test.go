package handlers

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"recipebox/internal/store"
	"recipebox/internal/testutil"
)

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	testutil.SnapshotPositions(t, env.DB)

	rr := serve(env.API.ListCategories, newRequest("GET", "/api/categories"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var names []string
	decodeBody(t, rr, &names)

	want, err := store.NewCategoryStore(env.DB).Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %q, want %q", names, want)
	}
}

func TestReorderCategories(t *testing.T) {
	env := newTestEnv(t)
	testutil.SnapshotPositions(t, env.DB)

	names, err := store.NewCategoryStore(env.DB).Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	order := make([]string, len(names))
	for i, n := range names {
		order[len(names)-1-i] = n
	}

	rr := serve(env.API.ReorderCategories, jsonRequest(t, "PUT", "/api/categories/order", map[string]any{"newOrder": order}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}
	var body struct {
		Message    string   `json:"message"`
		Categories []string `json:"categories"`
	}
	decodeBody(t, rr, &body)
	if !reflect.DeepEqual(body.Categories, order) {
		t.Errorf("categories: got %q, want %q", body.Categories, order)
	}

	rr = serve(env.API.ListCategories, newRequest("GET", "/api/categories"))
	var listed []string
	decodeBody(t, rr, &listed)
	if !reflect.DeepEqual(listed, order) {
		t.Errorf("list after reorder: got %q, want %q", listed, order)
	}
}

func TestReorderCategoriesInvalid(t *testing.T) {
	env := newTestEnv(t)
	testutil.SnapshotPositions(t, env.DB)
	categories := store.NewCategoryStore(env.DB)

	before, err := categories.Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}

	invalid := [][]string{
		before[:len(before)-1],
		append(append([]string{}, before...), "汁物"),
		append(append([]string{}, before[:len(before)-1]...), before[0]),
	}
	for _, order := range invalid {
		rr := serve(env.API.ReorderCategories, jsonRequest(t, "PUT", "/api/categories/order", map[string]any{"newOrder": order}))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("order %q: got %d, want 400", order, rr.Code)
		}
	}

	after, err := categories.Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !reflect.DeepEqual(after, before) {
		t.Errorf("order changed after rejected reorders: %q -> %q", before, after)
	}
}
