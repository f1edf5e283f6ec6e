package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cheflink/backoffice/internal/invoice"
	"github.com/cheflink/backoffice/internal/model"
	"github.com/cheflink/backoffice/internal/wizard"
)

func TestGenerate(t *testing.T) {
	var order wizard.Order
	order.AddProduct(model.Product{ID: 1, Name: "Coffee", Price: decimal.RequireFromString("3.00")}, 2)
	order.AddProduct(model.Product{ID: 2, Name: "Cake", Price: decimal.RequireFromString("5.50")}, 1)
	hallID, tableID := 1, 5
	order.HallID = &hallID
	order.TableID = &tableID

	jane := model.Customer{ID: 9, Name: "Jane", Lastname: "Doe", DNI: "12345678", Email: "jane@example.com"}

	inv := invoice.Generate(order, jane)

	if inv.Customer.ID != 9 {
		t.Errorf("customer: got %d, want 9", inv.Customer.ID)
	}
	if len(inv.Lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(inv.Lines))
	}
	if inv.Lines[0].Name != "Coffee" || inv.Lines[0].Quantity != 2 {
		t.Errorf("first line: got %s x%d", inv.Lines[0].Name, inv.Lines[0].Quantity)
	}
	if got := inv.Lines[0].LineTotal.StringFixed(2); got != "6.00" {
		t.Errorf("coffee line total: got %s, want 6.00", got)
	}
	if got := inv.Lines[1].LineTotal.StringFixed(2); got != "5.50" {
		t.Errorf("cake line total: got %s, want 5.50", got)
	}
	if got := inv.Total.StringFixed(2); got != "11.50" {
		t.Errorf("total: got %s, want 11.50", got)
	}
	if inv.Display != "$11.50" {
		t.Errorf("display: got %s, want $11.50", inv.Display)
	}
	if inv.HallID == nil || *inv.HallID != 1 || inv.TableID == nil || *inv.TableID != 5 {
		t.Errorf("hall/table: got %v/%v", inv.HallID, inv.TableID)
	}
}

func TestGenerateEmptyOrder(t *testing.T) {
	inv := invoice.Generate(wizard.Order{}, model.Customer{ID: 1})

	if len(inv.Lines) != 0 {
		t.Errorf("lines: got %d, want 0", len(inv.Lines))
	}
	if inv.Display != "$0.00" {
		t.Errorf("display: got %s, want $0.00", inv.Display)
	}
}

func TestGenerateUsesFrozenSnapshotPrices(t *testing.T) {
	p := model.Product{ID: 1, Name: "Coffee", Price: decimal.RequireFromString("3.00")}
	var order wizard.Order
	order.AddProduct(p, 1)

	// A later catalog price change must not affect the order snapshot.
	p.Price = decimal.RequireFromString("9.99")

	inv := invoice.Generate(order, model.Customer{ID: 1})
	if got := inv.Total.StringFixed(2); got != "3.00" {
		t.Errorf("total: got %s, want 3.00", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":      "$0.00",
		"11.5":   "$11.50",
		"3":      "$3.00",
		"12.345": "$12.35",
	}
	for in, want := range cases {
		if got := invoice.FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Errorf("format %s: got %s, want %s", in, got, want)
		}
	}
}
