package model

import "github.com/shopspring/decimal"

// Drafts are the create/edit request bodies the upstream services
// accept: the entity fields without the server-assigned id.

type CustomerDraft struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
}

type ProductDraft struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int             `json:"id_category"`
	Availability bool            `json:"availability"`
}

type CategoryDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HallDraft struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type TableDraft struct {
	TableNumber int `json:"tableNumber"`
	Capacity    int `json:"capacity"`
	HallID      int `json:"idLounge"`
}

type PaymentMethodDraft struct {
	Type string `json:"type"`
}
