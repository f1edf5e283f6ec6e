package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cheflink/backoffice/internal/model"
)

// ProductCatalog is the category-scoped read the product screen needs.
// Satisfied by *client.Products.
type ProductCatalog interface {
	ListByCategory(ctx context.Context, categoryID int) ([]model.Product, error)
}

// ProductHandler serves the products screen. On top of the shared CRUD
// shape it supports ?category={id}, the scoped fetch the order wizard's
// product-selection step uses.
type ProductHandler struct {
	crud    *CrudHandler[model.Product, model.ProductDraft]
	catalog ProductCatalog
	notify  Notifier
}

func NewProductHandler(scr CrudScreen[model.Product, model.ProductDraft], catalog ProductCatalog, notify Notifier) *ProductHandler {
	return &ProductHandler{
		crud:    NewCrudHandler("product", scr, notify, ValidateProductDraft),
		catalog: catalog,
		notify:  orNoop(notify),
	}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.crud.Create)
	r.Put("/{id}", h.crud.Update)
	r.Delete("/{id}", h.crud.Delete)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryParam := r.URL.Query().Get("category")
	if categoryParam == "" {
		h.crud.List(w, r)
		return
	}

	categoryID, err := parseIntParam(categoryParam)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	products, err := h.catalog.ListByCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("ERROR: list products by category: %v", err)
		h.notify.Notify("error", "Error", "could not load products for category")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}
