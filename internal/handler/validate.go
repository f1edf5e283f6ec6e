package handler

import (
	"errors"

	"github.com/cheflink/backoffice/internal/model"
)

// Required-field checks applied before any upstream write. These mirror
// the admin UI's form constraints.

func ValidateCustomerDraft(d model.CustomerDraft) error {
	switch {
	case d.Name == "":
		return errors.New("name is required")
	case d.Lastname == "":
		return errors.New("lastname is required")
	case d.Email == "":
		return errors.New("email is required")
	}
	return nil
}

func ValidateProductDraft(d model.ProductDraft) error {
	switch {
	case d.Name == "":
		return errors.New("name is required")
	case d.Price.IsNegative():
		return errors.New("price must not be negative")
	case d.CategoryID <= 0:
		return errors.New("id_category is required")
	}
	return nil
}

func ValidateCategoryDraft(d model.CategoryDraft) error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func ValidateHallDraft(d model.HallDraft) error {
	switch {
	case d.Name == "":
		return errors.New("name is required")
	case d.Capacity <= 0:
		return errors.New("capacity must be positive")
	}
	return nil
}

func ValidateTableDraft(d model.TableDraft) error {
	switch {
	case d.TableNumber <= 0:
		return errors.New("tableNumber must be positive")
	case d.Capacity <= 0:
		return errors.New("capacity must be positive")
	case d.HallID <= 0:
		return errors.New("idLounge is required")
	}
	return nil
}

func ValidatePaymentMethodDraft(d model.PaymentMethodDraft) error {
	if d.Type == "" {
		return errors.New("type is required")
	}
	return nil
}
