package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cheflink/backoffice/internal/invoice"
	"github.com/cheflink/backoffice/internal/model"
	"github.com/cheflink/backoffice/internal/wizard"
)

// HallSource lists halls for the hall-selection step. Satisfied by
// *screen.Halls.
type HallSource interface {
	List(ctx context.Context, query string) ([]model.Hall, error)
}

// CustomerSource lists customers for the invoice payee lookup.
// Satisfied by *screen.Customers.
type CustomerSource interface {
	List(ctx context.Context, query string) ([]model.Customer, error)
}

// MailSender dispatches the invoice email. Satisfied by *mail.Sender.
type MailSender interface {
	SendInvoice(ctx context.Context, email, name string) error
}

// OrderHandler drives the order-building wizard over HTTP. Each
// traversal is one wizard session addressed by its id.
type OrderHandler struct {
	sessions  *wizard.Manager
	halls     HallSource
	customers CustomerSource
	mail      MailSender
	notify    Notifier
}

func NewOrderHandler(sessions *wizard.Manager, halls HallSource, customers CustomerSource, mail MailSender, notify Notifier) *OrderHandler {
	return &OrderHandler{
		sessions:  sessions,
		halls:     halls,
		customers: customers,
		mail:      mail,
		notify:    orNoop(notify),
	}
}

// RegisterRoutes registers the wizard endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Begin)
	r.Route("/{sid}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/hall", h.SelectHall)
		r.Post("/table", h.SelectTable)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.SetQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Post("/generate", h.GenerateOrder)
		r.Post("/invoice", h.ProceedToInvoice)
		r.Get("/customers", h.SearchCustomers)
		r.Post("/invoice/customer", h.SelectCustomer)
		r.Post("/invoice/generate", h.GenerateInvoice)
		r.Post("/invoice/email", h.EmailInvoice)
		r.Post("/reset", h.Reset)
	})
}

// --- Request / Response types ---

type selectHallRequest struct {
	HallID int `json:"hallId"`
}

type selectTableRequest struct {
	TableID int `json:"tableId"`
}

type addItemRequest struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type selectCustomerRequest struct {
	CustomerID int `json:"id_client"`
}

type sessionResponse struct {
	SessionID string       `json:"sessionId"`
	Step      wizard.Step  `json:"step"`
	Order     wizard.Order `json:"order"`
	Total     string       `json:"total"`
	Hall      *model.Hall  `json:"hall,omitempty"`
	Table     *model.Table `json:"table,omitempty"`
}

func toSessionResponse(s *wizard.Session) sessionResponse {
	order := s.Order()
	return sessionResponse{
		SessionID: s.ID.String(),
		Step:      s.Step(),
		Order:     order,
		Total:     invoice.FormatAmount(order.Total()),
		Hall:      s.Hall(),
		Table:     s.Table(),
	}
}

// --- Handlers ---

// Begin starts a new wizard traversal with an empty order.
func (h *OrderHandler) Begin(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Begin()
	writeJSON(w, http.StatusCreated, toSessionResponse(s))
}

// Get returns the session's current step and order.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// SelectHall records the chosen hall and returns that hall's tables
// for the next step.
func (h *OrderHandler) SelectHall(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectHallRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	halls, err := h.halls.List(r.Context(), "")
	if err != nil {
		log.Printf("ERROR: load halls: %v", err)
		h.notify.Notify("error", "Error", "could not load halls")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
		return
	}

	var hall *model.Hall
	for i := range halls {
		if halls[i].ID == req.HallID {
			hall = &halls[i]
			break
		}
	}
	if hall == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "hall not found"})
		return
	}

	tables, err := s.SelectHall(r.Context(), *hall)
	if err != nil {
		h.wizardError(w, "select hall", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": toSessionResponse(s),
		"tables":  tables,
	})
}

// SelectTable records one of the hall's tables.
func (h *OrderHandler) SelectTable(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectTableRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.SelectTable(req.TableID); err != nil {
		h.wizardError(w, "select table", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// AddItem merges a product snapshot into the order.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Product.ID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product is required"})
		return
	}

	if err := s.AddProduct(req.Product, req.Quantity); err != nil {
		h.wizardError(w, "add product", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// SetQuantity replaces an order line's quantity.
func (h *OrderHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	productID, err := parseIntParam(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req setQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.SetQuantity(productID, req.Quantity); err != nil {
		h.wizardError(w, "set quantity", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// RemoveItem drops a product line from the order.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	productID, err := parseIntParam(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	if err := s.RemoveProduct(productID); err != nil {
		h.wizardError(w, "remove product", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// GenerateOrder closes product selection and moves to the summary.
func (h *OrderHandler) GenerateOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.GenerateOrder(); err != nil {
		h.wizardError(w, "generate order", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// ProceedToInvoice moves from the summary to the invoice step.
func (h *OrderHandler) ProceedToInvoice(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.ProceedToInvoice(); err != nil {
		h.wizardError(w, "proceed to invoice", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// SearchCustomers filters the customer list by name, lastname or DNI
// substring for the payee lookup.
func (h *OrderHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session(w, r); !ok {
		return
	}

	customers, err := h.customers.List(r.Context(), "")
	if err != nil {
		log.Printf("ERROR: load customers: %v", err)
		h.notify.Notify("error", "Error", "could not load customers")
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	filtered := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Lastname), q) ||
			strings.Contains(c.DNI, q) {
			filtered = append(filtered, c)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// SelectCustomer records the invoice payee.
func (h *OrderHandler) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	customers, err := h.customers.List(r.Context(), "")
	if err != nil {
		log.Printf("ERROR: load customers: %v", err)
		h.notify.Notify("error", "Error", "could not load customers")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
		return
	}

	var customer *model.Customer
	for i := range customers {
		if customers[i].ID == req.CustomerID {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
		return
	}

	if err := s.SelectCustomer(*customer); err != nil {
		h.wizardError(w, "select customer", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// GenerateInvoice freezes the order and payee into a rendered invoice.
// Nothing is written to any backend.
func (h *OrderHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	order, customer, err := s.GenerateInvoice()
	if err != nil {
		h.wizardError(w, "generate invoice", err)
		return
	}

	h.notify.Notify("success", "Success", "invoice generated")
	writeJSON(w, http.StatusOK, invoice.Generate(order, customer))
}

// EmailInvoice sends the generated invoice to the payee's address via
// the mail service.
func (h *OrderHandler) EmailInvoice(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	customer, err := s.InvoiceCustomer()
	if err != nil {
		h.wizardError(w, "email invoice", err)
		return
	}

	if err := h.mail.SendInvoice(r.Context(), customer.Email, customer.DisplayName()); err != nil {
		log.Printf("ERROR: send invoice mail: %v", err)
		h.notify.Notify("error", "Error", "could not send the invoice email")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "mail service unavailable"})
		return
	}

	h.notify.Notify("success", "Success", "invoice emailed to "+customer.Email)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Reset discards the order and returns the session to the hall step.
func (h *OrderHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Reset()
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// --- helpers ---

func (h *OrderHandler) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	sid, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return nil, false
	}
	s, ok := h.sessions.Get(sid)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return s, true
}

func (h *OrderHandler) wizardError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrNotGenerated):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, wizard.ErrQuantityTooLow),
		errors.Is(err, wizard.ErrEmptyOrder),
		errors.Is(err, wizard.ErrNoCustomer),
		errors.Is(err, wizard.ErrUnknownProduct),
		errors.Is(err, wizard.ErrUnknownTable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		h.notify.Notify("error", "Error", "could not "+op)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
	}
}
