package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cheflink/backoffice/internal/client"
	"github.com/cheflink/backoffice/internal/screen"
)

// CrudScreen is the listing-screen surface a CRUD handler needs.
// Satisfied by *screen.Screen[T, D].
type CrudScreen[T, D any] interface {
	List(ctx context.Context, query string) ([]T, error)
	Create(ctx context.Context, draft D) error
	Update(ctx context.Context, id int, draft D) error
	Delete(ctx context.Context, id int) error
}

// CrudHandler serves one entity's listing screen: list with search,
// create, update, delete. All six screens share this shape; only the
// entity label, validation and screen differ.
type CrudHandler[T, D any] struct {
	entity     string // singular label used in notifications
	screen     CrudScreen[T, D]
	notify     Notifier
	validate   func(D) error
	afterWrite func()
}

func NewCrudHandler[T, D any](entity string, scr CrudScreen[T, D], notify Notifier, validate func(D) error) *CrudHandler[T, D] {
	return &CrudHandler[T, D]{
		entity:   entity,
		screen:   scr,
		notify:   orNoop(notify),
		validate: validate,
	}
}

// AfterWrite registers a hook invoked after every successful mutation,
// used to invalidate caches derived from this entity.
func (h *CrudHandler[T, D]) AfterWrite(fn func()) *CrudHandler[T, D] {
	h.afterWrite = fn
	return h
}

// RegisterRoutes registers the CRUD endpoints on the given Chi router.
func (h *CrudHandler[T, D]) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List returns the collection filtered by ?q=. When the upstream fetch
// fails the previously fetched snapshot is served unchanged, with the
// failure surfaced as a notification only.
func (h *CrudHandler[T, D]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.screen.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("ERROR: list %ss: %v", h.entity, err)
		h.notify.Notify("error", "Error", "could not load "+h.entity+" list")
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create validates and creates a new record, then re-fetches.
func (h *CrudHandler[T, D]) Create(w http.ResponseWriter, r *http.Request) {
	var draft D
	if err := decodeBody(r, &draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if h.validate != nil {
		if err := h.validate(draft); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	if err := h.screen.Create(r.Context(), draft); err != nil {
		h.writeError(w, "create", err)
		return
	}

	if h.afterWrite != nil {
		h.afterWrite()
	}
	h.notify.Notify("success", "Success", h.entity+" created")
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// Update validates and updates an existing record, then re-fetches.
func (h *CrudHandler[T, D]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + h.entity + " ID"})
		return
	}

	var draft D
	if err := decodeBody(r, &draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if h.validate != nil {
		if err := h.validate(draft); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	if err := h.screen.Update(r.Context(), id, draft); err != nil {
		h.writeError(w, "update", err)
		return
	}

	if h.afterWrite != nil {
		h.afterWrite()
	}
	h.notify.Notify("success", "Success", h.entity+" updated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete removes a record, then re-fetches.
func (h *CrudHandler[T, D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + h.entity + " ID"})
		return
	}

	if err := h.screen.Delete(r.Context(), id); err != nil {
		h.writeError(w, "delete", err)
		return
	}

	if h.afterWrite != nil {
		h.afterWrite()
	}
	h.notify.Notify("success", "Success", h.entity+" deleted")
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps screen errors to responses. Every failure is scoped
// to the triggering action: notify, answer, move on.
func (h *CrudHandler[T, D]) writeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, screen.ErrDuplicateName) {
		h.notify.Notify("error", "Error", "a "+h.entity+" with this name already exists")
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	log.Printf("ERROR: %s %s: %v", op, h.entity, err)
	h.notify.Notify("error", "Error", "could not "+op+" "+h.entity)

	var statusErr *client.StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": h.entity + " not found"})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
}
