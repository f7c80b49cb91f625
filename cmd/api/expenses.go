package main

import (
	"errors"
	"net/http"

	"duka/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CreateExpensePayload struct {
	Description string `json:"description" validate:"required,max=255"`
	Amount      string `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"required,max=100"`
}

type UpdateExpensePayload struct {
	Description *string `json:"description" validate:"omitempty,max=255"`
	Amount      *string `json:"amount"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

func (app *application) listExpensesHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	expenses, err := app.store.Expenses.List(r.Context(), business.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, expenses)
}

func (app *application) createExpenseHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload CreateExpensePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil || !amount.IsPositive() {
		app.badRequestResponse(w, r, errors.New("invalid amount"))
		return
	}

	user := getUserFromContext(r)

	expense := &store.Expense{
		Description:  payload.Description,
		Amount:       amount,
		Category:     payload.Category,
		BusinessID:   business.ID,
		RecordedByID: user.ID,
	}

	if err := app.store.Expenses.Create(r.Context(), expense); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, expense)
}

func (app *application) updateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload UpdateExpensePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := map[string]any{}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Amount != nil {
		amount, err := decimal.NewFromString(*payload.Amount)
		if err != nil || !amount.IsPositive() {
			app.badRequestResponse(w, r, errors.New("invalid amount"))
			return
		}
		updates["amount"] = amount
	}
	if payload.Category != nil {
		updates["category"] = *payload.Category
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, errors.New("no fields to update"))
		return
	}

	expense, err := app.store.Expenses.Update(r.Context(), business.ID, chi.URLParam(r, "expenseID"), updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Expense not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, expense)
}

func (app *application) deleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	err := app.store.Expenses.Delete(r.Context(), business.ID, chi.URLParam(r, "expenseID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Expense not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}
