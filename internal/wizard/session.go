// Package wizard implements the order-building flow as an explicit
// state machine: hall -> table -> products -> summary -> invoice,
// with a full reset as the only backward transition. Each traversal
// lives in one in-memory session.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cheflink/backoffice/internal/model"
)

// Step identifies a wizard state.
type Step string

const (
	StepHall     Step = "hall"
	StepTable    Step = "table"
	StepProducts Step = "products"
	StepSummary  Step = "summary"
	StepInvoice  Step = "invoice"
)

// Errors returned by wizard sessions.
var (
	ErrWrongStep      = errors.New("operation not allowed in current step")
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	ErrUnknownProduct = errors.New("product not in order")
	ErrUnknownTable   = errors.New("table not in selected hall")
	ErrEmptyOrder     = errors.New("order has no items")
	ErrNoCustomer     = errors.New("no customer selected")
	ErrNotGenerated   = errors.New("invoice not generated")
)

// TableLister fetches the tables of one hall. Satisfied by
// *client.Tables.
type TableLister interface {
	ListByHall(ctx context.Context, hallID int) ([]model.Table, error)
}

// Session is one order-building traversal. All methods are safe for
// concurrent use, though the flow is driven by a single UI.
type Session struct {
	ID uuid.UUID

	tables TableLister

	mu         sync.Mutex
	step       Step
	order      Order
	hall       *model.Hall
	table      *model.Table
	hallTables []model.Table
	customer   *model.Customer
	generated  bool
	lastActive time.Time
}

func newSession(tables TableLister) *Session {
	return &Session{
		ID:         uuid.New(),
		tables:     tables,
		step:       StepHall,
		lastActive: time.Now(),
	}
}

// Step returns the current wizard state.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Order returns a copy of the aggregate being built.
func (s *Session) Order() Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOrder()
}

func (s *Session) copyOrder() Order {
	o := s.order
	o.Items = make([]Item, len(s.order.Items))
	copy(o.Items, s.order.Items)
	return o
}

func (s *Session) touch() { s.lastActive = time.Now() }

// SelectHall records the hall, fetches its tables, and advances to the
// table step. The table fetch failing leaves the session on the hall
// step with nothing recorded.
func (s *Session) SelectHall(ctx context.Context, hall model.Hall) ([]model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepHall {
		return nil, ErrWrongStep
	}

	tables, err := s.tables.ListByHall(ctx, hall.ID)
	if err != nil {
		return nil, err
	}

	id := hall.ID
	s.hall = &hall
	s.order.HallID = &id
	s.hallTables = tables
	s.step = StepTable

	out := make([]model.Table, len(tables))
	copy(out, tables)
	return out, nil
}

// SelectTable records one of the selected hall's tables and advances to
// the products step.
func (s *Session) SelectTable(tableID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepTable {
		return ErrWrongStep
	}

	for _, t := range s.hallTables {
		if t.ID == tableID {
			table := t
			id := table.ID
			s.table = &table
			s.order.TableID = &id
			s.step = StepProducts
			return nil
		}
	}
	return ErrUnknownTable
}

// AddProduct merges a product line into the order.
func (s *Session) AddProduct(p model.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepProducts {
		return ErrWrongStep
	}
	return s.order.AddProduct(p, quantity)
}

// RemoveProduct drops a product line from the order.
func (s *Session) RemoveProduct(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepProducts {
		return ErrWrongStep
	}
	s.order.RemoveProduct(productID)
	return nil
}

// SetQuantity replaces a line's quantity.
func (s *Session) SetQuantity(productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepProducts {
		return ErrWrongStep
	}
	return s.order.SetQuantity(productID, quantity)
}

// GenerateOrder closes product selection and advances to the summary.
// An empty order cannot be generated.
func (s *Session) GenerateOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepProducts {
		return ErrWrongStep
	}
	if len(s.order.Items) == 0 {
		return ErrEmptyOrder
	}
	s.step = StepSummary
	return nil
}

// ProceedToInvoice advances from the summary to the invoice step.
func (s *Session) ProceedToInvoice() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepSummary {
		return ErrWrongStep
	}
	s.step = StepInvoice
	return nil
}

// SelectCustomer records the invoice payee. Allowed only on the invoice
// step; reselecting before generation replaces the previous choice.
func (s *Session) SelectCustomer(c model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepInvoice {
		return ErrWrongStep
	}
	s.customer = &c
	return nil
}

// GenerateInvoice freezes the order and selected customer. This is a
// sub-state of the invoice step, not a transition; no backend record is
// created. Returns the frozen order and payee.
func (s *Session) GenerateInvoice() (Order, model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepInvoice {
		return Order{}, model.Customer{}, ErrWrongStep
	}
	if s.customer == nil {
		return Order{}, model.Customer{}, ErrNoCustomer
	}
	s.generated = true
	return s.copyOrder(), *s.customer, nil
}

// InvoiceCustomer returns the payee of a generated invoice, for the
// send-by-email side effect.
func (s *Session) InvoiceCustomer() (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.generated || s.customer == nil {
		return model.Customer{}, ErrNotGenerated
	}
	return *s.customer, nil
}

// Reset discards the order and returns to the hall step. Callable from
// any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.step = StepHall
	s.order = Order{}
	s.hall = nil
	s.table = nil
	s.hallTables = nil
	s.customer = nil
	s.generated = false
}

// Hall returns the selected hall, if any.
func (s *Session) Hall() *model.Hall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hall == nil {
		return nil
	}
	h := *s.hall
	return &h
}

// Table returns the selected table, if any.
func (s *Session) Table() *model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return nil
	}
	t := *s.table
	return &t
}
