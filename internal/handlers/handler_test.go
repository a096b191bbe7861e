// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Tests that need PostgreSQL are skipped when it is unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"recipebox/internal/storage"
	"recipebox/internal/store"
	"recipebox/internal/testutil"
)

// mockSuggester implements Suggester for handler tests.
type mockSuggester struct {
	mu         sync.Mutex
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (m *mockSuggester) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPrompt = prompt
	return m.response, m.err
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Images    *storage.Disk
	Suggester *mockSuggester
	API       *API
}

// newTestEnv creates a test environment backed by PostgreSQL and a
// temporary upload directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.DB(t)
	images, err := storage.NewDisk(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("storage.NewDisk: %v", err)
	}
	suggester := &mockSuggester{response: "mock suggestion"}

	api := NewAPI(store.NewCategoryStore(db), store.NewRecipeStore(db), store.NewCommentStore(db), images, suggester)

	return &testEnv{DB: db, Images: images, Suggester: suggester, API: api}
}

// newOfflineAPI returns an API with no database, for paths that must fail
// or answer before touching storage.
func newOfflineAPI(s Suggester) *API {
	return NewAPI(nil, nil, nil, nil, s)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// serve runs handler and returns the recorder.
func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// decodeBody unmarshals the recorder body into v.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

// message returns the "message" field of an error body.
func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	decodeBody(t, rr, &body)
	msg, _ := body["message"].(string)
	return msg
}

// uniqueTitle returns a recipe title no other test uses and removes the
// recipe when the test finishes.
func uniqueTitle(t *testing.T, db *sql.DB, prefix string) string {
	t.Helper()
	title := prefix + "-" + uuid.NewString()[:8]
	t.Cleanup(func() { testutil.CleanRecipes(t, db, title) })
	return title
}

// newRequest builds a request without a body.
func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
