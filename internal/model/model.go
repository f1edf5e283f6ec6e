// Package model holds the wire types of the upstream entity services.
// JSON field names mirror what the services actually emit, inconsistencies
// included (idHalls vs id_product vs paymentId).
package model

import "github.com/shopspring/decimal"

type Customer struct {
	ID       int    `json:"id_client"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
}

// DisplayName is the "name lastname" form used on invoices and mail.
func (c Customer) DisplayName() string {
	return c.Name + " " + c.Lastname
}

type Product struct {
	ID           int             `json:"id_product"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int             `json:"id_category"`
	Availability bool            `json:"availability"`
}

type Category struct {
	ID          int    `json:"id_category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Hall struct {
	ID       int    `json:"idHalls"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type Table struct {
	ID          int `json:"idTable"`
	TableNumber int `json:"tableNumber"`
	Capacity    int `json:"capacity"`
	HallID      int `json:"idLounge"`
}

type PaymentMethod struct {
	ID   int    `json:"paymentId"`
	Type string `json:"type"`
}
