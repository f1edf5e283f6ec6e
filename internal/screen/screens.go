package screen

import (
	"strconv"
	"strings"

	"github.com/cheflink/backoffice/internal/model"
)

// Per-entity screen constructors. Search fields and the duplicate-name
// rule follow the admin UI: only customers, products and categories
// carry the name check.

type (
	Customers  = Screen[model.Customer, model.CustomerDraft]
	Products   = Screen[model.Product, model.ProductDraft]
	Categories = Screen[model.Category, model.CategoryDraft]
	Halls      = Screen[model.Hall, model.HallDraft]
	Tables     = Screen[model.Table, model.TableDraft]
	Payments   = Screen[model.PaymentMethod, model.PaymentMethodDraft]
)

func NewCustomers(res resource[model.Customer]) *Customers {
	return New(res, Config[model.Customer, model.CustomerDraft]{
		ID:        func(c model.Customer) int { return c.ID },
		Name:      func(c model.Customer) string { return c.Name },
		DraftName: func(d model.CustomerDraft) string { return d.Name },
		Match: func(c model.Customer, q string) bool {
			return strings.Contains(strings.ToLower(c.Name), q) ||
				strings.Contains(strings.ToLower(c.Lastname), q) ||
				strings.Contains(strings.ToLower(c.Email), q) ||
				strings.Contains(c.Phone, q)
		},
	})
}

func NewProducts(res resource[model.Product]) *Products {
	return New(res, Config[model.Product, model.ProductDraft]{
		ID:        func(p model.Product) int { return p.ID },
		Name:      func(p model.Product) string { return p.Name },
		DraftName: func(d model.ProductDraft) string { return d.Name },
		Match: func(p model.Product, q string) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q)
		},
	})
}

func NewCategories(res resource[model.Category]) *Categories {
	return New(res, Config[model.Category, model.CategoryDraft]{
		ID:        func(c model.Category) int { return c.ID },
		Name:      func(c model.Category) string { return c.Name },
		DraftName: func(d model.CategoryDraft) string { return d.Name },
		Match: func(c model.Category, q string) bool {
			return strings.Contains(strings.ToLower(c.Name), q)
		},
	})
}

func NewHalls(res resource[model.Hall]) *Halls {
	return New(res, Config[model.Hall, model.HallDraft]{
		ID: func(h model.Hall) int { return h.ID },
		Match: func(h model.Hall, q string) bool {
			return strings.Contains(strings.ToLower(h.Name), q)
		},
	})
}

func NewTables(res resource[model.Table]) *Tables {
	return New(res, Config[model.Table, model.TableDraft]{
		ID: func(t model.Table) int { return t.ID },
		Match: func(t model.Table, q string) bool {
			return strings.Contains(strconv.Itoa(t.TableNumber), q)
		},
	})
}

func NewPayments(res resource[model.PaymentMethod]) *Payments {
	return New(res, Config[model.PaymentMethod, model.PaymentMethodDraft]{
		ID: func(p model.PaymentMethod) int { return p.ID },
		Match: func(p model.PaymentMethod, q string) bool {
			return strings.Contains(strings.ToLower(p.Type), q)
		},
	})
}
