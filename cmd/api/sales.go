package main

import (
	"errors"
	"net/http"

	"duka/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type SaleItemPayload struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateSalePayload struct {
	CustomerID    string            `json:"customerId" validate:"omitempty,uuid"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,paymentmethod"`
	TotalAmount   string            `json:"totalAmount" validate:"omitempty"`
	Items         []SaleItemPayload `json:"items" validate:"required,min=1,dive"`
}

func (app *application) createSaleHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload CreateSalePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Totals are recomputed server-side; a client-supplied total is only a
	// cross-check and is rejected on mismatch.
	claimedTotal := decimal.Zero
	if payload.TotalAmount != "" {
		var err error
		claimedTotal, err = decimal.NewFromString(payload.TotalAmount)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid total amount"))
			return
		}
	}

	user := getUserFromContext(r)

	sale := &store.Sale{
		CustomerID:    store.NewNullString(payload.CustomerID),
		PaymentMethod: payload.PaymentMethod,
		BusinessID:    business.ID,
		SoldByID:      user.ID,
	}

	items := make([]store.SaleItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, store.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	err := app.store.Sales.Create(r.Context(), sale, items, claimedTotal)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptySale):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, "Product not found")
		case errors.Is(err, store.ErrTotalMismatch):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, store.ErrInsufficientStock):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusCreated, sale)
}

func (app *application) listSalesHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	sales, err := app.store.Sales.List(r.Context(), business.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, sales)
}

func (app *application) getSaleHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	sale, err := app.store.Sales.GetByID(r.Context(), business.ID, chi.URLParam(r, "saleID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Sale not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, sale)
}
