package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cheflink/backoffice/internal/model"
)

// Customers is the resource client for the clients service.
type Customers struct {
	*Resource[model.Customer]
}

func NewCustomers(baseURL string, hc *http.Client) *Customers {
	return &Customers{Resource: NewResource[model.Customer](baseURL, "/bring_all", hc)}
}

// Categories is the resource client for the category service.
type Categories struct {
	*Resource[model.Category]
}

func NewCategories(baseURL string, hc *http.Client) *Categories {
	return &Categories{Resource: NewResource[model.Category](baseURL, "/bring_all", hc)}
}

// Products is the resource client for the products service. Category-scoped
// listing goes through the category service, which wraps the result in a
// {"listProducts": [...]} envelope.
type Products struct {
	*Resource[model.Product]
	categoriesURL string
}

func NewProducts(baseURL, categoriesURL string, hc *http.Client) *Products {
	return &Products{
		Resource:      NewResource[model.Product](baseURL, "/bring_all", hc),
		categoriesURL: categoriesURL,
	}
}

type productListEnvelope struct {
	ListProducts []model.Product `json:"listProducts"`
}

// ListByCategory fetches the products belonging to one category.
// GET {categories}/products/{categoryId}.
func (p *Products) ListByCategory(ctx context.Context, categoryID int) ([]model.Product, error) {
	var env productListEnvelope
	url := fmt.Sprintf("%s/products/%d", p.categoriesURL, categoryID)
	if err := p.getJSON(ctx, url, &env); err != nil {
		return nil, err
	}
	return env.ListProducts, nil
}

// Halls is the resource client for the halls service.
type Halls struct {
	*Resource[model.Hall]
}

func NewHalls(baseURL string, hc *http.Client) *Halls {
	return &Halls{Resource: NewResource[model.Hall](baseURL, "/bring_all", hc)}
}

// Get fetches a single hall. GET {base}/bringHall/{id}.
func (h *Halls) Get(ctx context.Context, id int) (model.Hall, error) {
	var hall model.Hall
	err := h.getJSON(ctx, fmt.Sprintf("%s/bringHall/%d", h.baseURL, id), &hall)
	return hall, err
}

// Tables is the resource client for the tables service.
type Tables struct {
	*Resource[model.Table]
}

func NewTables(baseURL string, hc *http.Client) *Tables {
	return &Tables{Resource: NewResource[model.Table](baseURL, "/bring_all", hc)}
}

// ListByHall fetches the tables of one hall. GET {base}/{hallId}.
func (t *Tables) ListByHall(ctx context.Context, hallID int) ([]model.Table, error) {
	var out []model.Table
	if err := t.getJSON(ctx, fmt.Sprintf("%s/%d", t.baseURL, hallID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Payments is the resource client for the payment methods service.
// Its list endpoint is spelled /bringAll, unlike every other service.
type Payments struct {
	*Resource[model.PaymentMethod]
}

func NewPayments(baseURL string, hc *http.Client) *Payments {
	return &Payments{Resource: NewResource[model.PaymentMethod](baseURL, "/bringAll", hc)}
}
