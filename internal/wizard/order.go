package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/cheflink/backoffice/internal/model"
)

// Item is one order line: a product snapshot plus a quantity. The
// snapshot is copied by value; later edits to the product catalog do
// not touch an order already holding it.
type Item struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Subtotal is price * quantity for this line.
func (i Item) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the in-memory aggregate a wizard session builds. It is
// serializable as-is; nothing outside this process persists it.
type Order struct {
	HallID  *int   `json:"hallId"`
	TableID *int   `json:"tableId"`
	Items   []Item `json:"items"`
}

// AddProduct merges a product into the order. At most one line exists
// per product id; adding an already-present product accumulates its
// quantity instead of appending a duplicate line.
func (o *Order) AddProduct(p model.Product, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}
	for i := range o.Items {
		if o.Items[i].Product.ID == p.ID {
			o.Items[i].Quantity += quantity
			return nil
		}
	}
	o.Items = append(o.Items, Item{Product: p, Quantity: quantity})
	return nil
}

// RemoveProduct drops the line for the given product id. Removing an
// absent id is a no-op; remaining lines keep their order and quantity.
func (o *Order) RemoveProduct(productID int) {
	for i := range o.Items {
		if o.Items[i].Product.ID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. Quantities below 1 are
// rejected uniformly, whichever control the edit came from.
func (o *Order) SetQuantity(productID, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}
	for i := range o.Items {
		if o.Items[i].Product.ID == productID {
			o.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrUnknownProduct
}

// Total computes the order total from scratch: sum of price * quantity
// over all lines. Never cached.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
