// Package invoice renders a finished wizard order into an invoice
// view. The invoice is ephemeral: it is returned to the caller and
// optionally emailed, never stored.
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/cheflink/backoffice/internal/model"
	"github.com/cheflink/backoffice/internal/wizard"
)

// Line is one rendered invoice row.
type Line struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Invoice freezes an order and its payee at generation time.
type Invoice struct {
	Customer model.Customer  `json:"customer"`
	HallID   *int            `json:"hallId"`
	TableID  *int            `json:"tableId"`
	Lines    []Line          `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	Display  string          `json:"display"`
}

// Generate builds the invoice view for an order and customer. Amounts
// are computed from the frozen product snapshots in the order.
func Generate(order wizard.Order, customer model.Customer) Invoice {
	lines := make([]Line, len(order.Items))
	for i, item := range order.Items {
		lines[i] = Line{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			LineTotal: item.Subtotal(),
		}
	}
	total := order.Total()
	return Invoice{
		Customer: customer,
		HallID:   order.HallID,
		TableID:  order.TableID,
		Lines:    lines,
		Total:    total,
		Display:  FormatAmount(total),
	}
}

// FormatAmount renders a money amount with a dollar sign and exactly
// two decimals.
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
