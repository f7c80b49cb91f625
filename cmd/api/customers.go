package main

import (
	"errors"
	"net/http"

	"duka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateCustomerPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

type UpdateCustomerPayload struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

func (app *application) listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	customers, err := app.store.Customers.List(r.Context(), business.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, customers)
}

func (app *application) createCustomerHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload CreateCustomerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer := &store.Customer{
		Name:        payload.Name,
		Email:       store.NewNullString(payload.Email),
		PhoneNumber: store.NewNullString(payload.PhoneNumber),
		Address:     store.NewNullString(payload.Address),
		BusinessID:  business.ID,
	}

	if err := app.store.Customers.Create(r.Context(), customer); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, customer)
}

func (app *application) updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload UpdateCustomerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Email != nil {
		updates["email"] = *payload.Email
	}
	if payload.PhoneNumber != nil {
		updates["phone_number"] = *payload.PhoneNumber
	}
	if payload.Address != nil {
		updates["address"] = *payload.Address
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, errors.New("no fields to update"))
		return
	}

	customer, err := app.store.Customers.Update(r.Context(), business.ID, chi.URLParam(r, "customerID"), updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Customer not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, customer)
}

func (app *application) deleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	err := app.store.Customers.Delete(r.Context(), business.ID, chi.URLParam(r, "customerID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Customer not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
