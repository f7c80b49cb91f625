package main

import (
	"errors"
	"net/http"

	"duka/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CreateProductPayload struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"omitempty,max=500"`
	Type          string `json:"type" validate:"required,oneof=product service"`
	Price         string `json:"price" validate:"required"`
	StockQuantity int    `json:"stockQuantity" validate:"gte=0"`
	MinStockLevel int    `json:"minStockLevel" validate:"gte=0"`
	CategoryID    string `json:"categoryId" validate:"omitempty,uuid"`
	IsActive      *bool  `json:"isActive"`
}

type UpdateProductPayload struct {
	Name          *string `json:"name" validate:"omitempty,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	Type          *string `json:"type" validate:"omitempty,oneof=product service"`
	Price         *string `json:"price"`
	StockQuantity *int    `json:"stockQuantity" validate:"omitempty,gte=0"`
	MinStockLevel *int    `json:"minStockLevel" validate:"omitempty,gte=0"`
	CategoryID    *string `json:"categoryId" validate:"omitempty,uuid"`
	IsActive      *bool   `json:"isActive"`
}

func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	products, err := app.store.Products.List(r.Context(), business.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, products)
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload CreateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil || price.IsNegative() {
		app.badRequestResponse(w, r, errors.New("invalid price"))
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	product := &store.Product{
		Name:          payload.Name,
		Description:   store.NewNullString(payload.Description),
		Type:          payload.Type,
		Price:         price,
		StockQuantity: payload.StockQuantity,
		MinStockLevel: payload.MinStockLevel,
		CategoryID:    store.NewNullString(payload.CategoryID),
		BusinessID:    business.ID,
		IsActive:      isActive,
	}

	if err := app.store.Products.Create(r.Context(), product); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, product)
}

func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload UpdateProductPayload
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
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Type != nil {
		updates["type"] = *payload.Type
	}
	if payload.Price != nil {
		price, err := decimal.NewFromString(*payload.Price)
		if err != nil || price.IsNegative() {
			app.badRequestResponse(w, r, errors.New("invalid price"))
			return
		}
		updates["price"] = price
	}
	if payload.StockQuantity != nil {
		updates["stock_quantity"] = *payload.StockQuantity
	}
	if payload.MinStockLevel != nil {
		updates["min_stock_level"] = *payload.MinStockLevel
	}
	if payload.CategoryID != nil {
		// Empty string clears the category; the uuid column takes NULL.
		if *payload.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			updates["category_id"] = *payload.CategoryID
		}
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, errors.New("no fields to update"))
		return
	}

	product, err := app.store.Products.Update(r.Context(), business.ID, chi.URLParam(r, "productID"), updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Product not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, product)
}

func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	err := app.store.Products.Delete(r.Context(), business.ID, chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Product not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (app *application) listLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	products, err := app.store.Products.ListLowStock(r.Context(), business.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, products)
}
