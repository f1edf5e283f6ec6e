package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cheflink/backoffice/internal/client"
	"github.com/cheflink/backoffice/internal/model"
	"github.com/cheflink/backoffice/internal/screen"
)

// --- shared test plumbing ---

type mockNotifier struct {
	events []string // "level: message"
}

func (m *mockNotifier) Notify(level, _, message string) {
	m.events = append(m.events, level+": "+message)
}

func (m *mockNotifier) last() string {
	if len(m.events) == 0 {
		return ""
	}
	return m.events[len(m.events)-1]
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// mockCategoryScreen is a canned CrudScreen for the category entity.
type mockCategoryScreen struct {
	items     []model.Category
	listErr   error
	writeErr  error
	mutations []string
}

func (m *mockCategoryScreen) List(_ context.Context, query string) ([]model.Category, error) {
	return m.items, m.listErr
}

func (m *mockCategoryScreen) Create(_ context.Context, d model.CategoryDraft) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mutations = append(m.mutations, "create "+d.Name)
	return nil
}

func (m *mockCategoryScreen) Update(_ context.Context, id int, d model.CategoryDraft) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mutations = append(m.mutations, "update "+d.Name)
	return nil
}

func (m *mockCategoryScreen) Delete(_ context.Context, id int) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mutations = append(m.mutations, "delete")
	return nil
}

func categoryRouter(scr *mockCategoryScreen, notify Notifier) chi.Router {
	h := NewCrudHandler[model.Category, model.CategoryDraft]("category", scr, notify, ValidateCategoryDraft)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// --- tests ---

func TestCrudListReturnsItems(t *testing.T) {
	scr := &mockCategoryScreen{items: []model.Category{{ID: 1, Name: "Drinks"}}}
	rec := doRequest(t, categoryRouter(scr, nil), http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var items []model.Category
	decodeResponse(t, rec, &items)
	if len(items) != 1 || items[0].Name != "Drinks" {
		t.Errorf("items: got %+v", items)
	}
}

func TestCrudListEmptyIsArrayNotNull(t *testing.T) {
	scr := &mockCategoryScreen{}
	rec := doRequest(t, categoryRouter(scr, nil), http.MethodGet, "/", nil)

	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Errorf("body: got %s, want []", got)
	}
}

func TestCrudListStaleDataOnUpstreamFailure(t *testing.T) {
	notify := &mockNotifier{}
	scr := &mockCategoryScreen{
		items:   []model.Category{{ID: 1, Name: "Drinks"}},
		listErr: errors.New("service down"),
	}
	rec := doRequest(t, categoryRouter(scr, notify), http.MethodGet, "/", nil)

	// The previously fetched collection is served, not an error page.
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var items []model.Category
	decodeResponse(t, rec, &items)
	if len(items) != 1 {
		t.Errorf("stale items: got %+v", items)
	}
	if notify.last() != "error: could not load category list" {
		t.Errorf("notification: got %q", notify.last())
	}
}

func TestCrudCreate(t *testing.T) {
	notify := &mockNotifier{}
	scr := &mockCategoryScreen{}
	rec := doRequest(t, categoryRouter(scr, notify), http.MethodPost, "/",
		model.CategoryDraft{Name: "Drinks", Description: "Cold and hot"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}
	if len(scr.mutations) != 1 || scr.mutations[0] != "create Drinks" {
		t.Errorf("mutations: got %v", scr.mutations)
	}
	if notify.last() != "success: category created" {
		t.Errorf("notification: got %q", notify.last())
	}
}

func TestCrudCreateInvalidBody(t *testing.T) {
	scr := &mockCategoryScreen{}
	r := categoryRouter(scr, nil)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if len(scr.mutations) != 0 {
		t.Errorf("mutation happened on bad body: %v", scr.mutations)
	}
}

func TestCrudCreateValidation(t *testing.T) {
	scr := &mockCategoryScreen{}
	rec := doRequest(t, categoryRouter(scr, nil), http.MethodPost, "/",
		model.CategoryDraft{Description: "no name"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if len(scr.mutations) != 0 {
		t.Errorf("mutation happened despite invalid draft: %v", scr.mutations)
	}
}

func TestCrudCreateDuplicateName(t *testing.T) {
	notify := &mockNotifier{}
	scr := &mockCategoryScreen{writeErr: screen.ErrDuplicateName}
	rec := doRequest(t, categoryRouter(scr, notify), http.MethodPost, "/",
		model.CategoryDraft{Name: "Drinks"})

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
	if notify.last() != "error: a category with this name already exists" {
		t.Errorf("notification: got %q", notify.last())
	}
}

func TestCrudUpdate(t *testing.T) {
	scr := &mockCategoryScreen{}
	rec := doRequest(t, categoryRouter(scr, nil), http.MethodPut, "/7",
		model.CategoryDraft{Name: "Desserts"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if len(scr.mutations) != 1 || scr.mutations[0] != "update Desserts" {
		t.Errorf("mutations: got %v", scr.mutations)
	}
}

func TestCrudUpdateInvalidID(t *testing.T) {
	scr := &mockCategoryScreen{}
	rec := doRequest(t, categoryRouter(scr, nil), http.MethodPut, "/abc",
		model.CategoryDraft{Name: "Desserts"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestCrudDelete(t *testing.T) {
	notify := &mockNotifier{}
	scr := &mockCategoryScreen{}
	rec := doRequest(t, categoryRouter(scr, notify), http.MethodDelete, "/7", nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}
	if notify.last() != "success: category deleted" {
		t.Errorf("notification: got %q", notify.last())
	}
}

func TestCrudUpstreamNotFound(t *testing.T) {
	scr := &mockCategoryScreen{writeErr: &client.StatusError{Status: http.StatusNotFound, URL: "http://categories/delete/99"}}
	rec := doRequest(t, categoryRouter(scr, nil), http.MethodDelete, "/99", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestCrudUpstreamFailure(t *testing.T) {
	notify := &mockNotifier{}
	scr := &mockCategoryScreen{writeErr: errors.New("connection refused")}
	rec := doRequest(t, categoryRouter(scr, notify), http.MethodPost, "/",
		model.CategoryDraft{Name: "Drinks"})

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", rec.Code)
	}
	if notify.last() != "error: could not create category" {
		t.Errorf("notification: got %q", notify.last())
	}
}

func TestCrudAfterWriteHook(t *testing.T) {
	calls := 0
	scr := &mockCategoryScreen{}
	h := NewCrudHandler[model.Category, model.CategoryDraft]("category", scr, nil, ValidateCategoryDraft).
		AfterWrite(func() { calls++ })
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	doRequest(t, r, http.MethodPost, "/", model.CategoryDraft{Name: "Drinks"})
	doRequest(t, r, http.MethodDelete, "/1", nil)
	if calls != 2 {
		t.Errorf("afterWrite calls: got %d, want 2", calls)
	}

	// Failed writes must not fire the hook.
	scr.writeErr = errors.New("down")
	doRequest(t, r, http.MethodPost, "/", model.CategoryDraft{Name: "Snacks"})
	if calls != 2 {
		t.Errorf("afterWrite fired on failed write")
	}
}
