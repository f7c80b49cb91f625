package main

import (
	"context"
	"net/http"
	"testing"

	"duka/internal/store"
)

func TestCreateProduct(t *testing.T) {
	app, ts, cookie := saleTestApp(t)

	var created *store.Product
	ts.products.create = func(ctx context.Context, product *store.Product) error {
		created = product
		return nil
	}
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPost, "/api/products", CreateProductPayload{
		Name:          "Rice 5kg",
		Type:          "product",
		Price:         "18500.00",
		StockQuantity: 40,
		MinStockLevel: 5,
	}, cookie)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if created == nil {
		t.Fatal("expected product to reach the store")
	}
	if created.BusinessID == "" {
		t.Error("product must be stamped with the owner's business")
	}
	if !created.IsActive {
		t.Error("products default to active")
	}
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	app, _, cookie := saleTestApp(t)
	mux := app.mount()

	for _, price := range []string{"abc", "-5.00"} {
		rr := doRequest(t, mux, http.MethodPost, "/api/products", CreateProductPayload{
			Name:  "Rice 5kg",
			Type:  "product",
			Price: price,
		}, cookie)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("price %q: expected 400, got %d", price, rr.Code)
		}
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	app, ts, cookie := saleTestApp(t)

	var gotUpdates map[string]any
	ts.products.update = func(ctx context.Context, businessID, id string, updates map[string]any) (*store.Product, error) {
		gotUpdates = updates
		return &store.Product{ID: id, BusinessID: businessID}, nil
	}
	mux := app.mount()

	name := "Rice 10kg"
	stock := 12
	rr := doRequest(t, mux, http.MethodPut, "/api/products/"+testProductID, UpdateProductPayload{
		Name:          &name,
		StockQuantity: &stock,
	}, cookie)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(gotUpdates) != 2 {
		t.Fatalf("expected exactly the provided fields, got %v", gotUpdates)
	}
	if gotUpdates["name"] != "Rice 10kg" || gotUpdates["stock_quantity"] != 12 {
		t.Errorf("unexpected updates: %v", gotUpdates)
	}
}

func TestUpdateProductClearsCategory(t *testing.T) {
	app, ts, cookie := saleTestApp(t)

	var gotUpdates map[string]any
	ts.products.update = func(ctx context.Context, businessID, id string, updates map[string]any) (*store.Product, error) {
		gotUpdates = updates
		return &store.Product{ID: id, BusinessID: businessID}, nil
	}
	mux := app.mount()

	empty := ""
	rr := doRequest(t, mux, http.MethodPut, "/api/products/"+testProductID, UpdateProductPayload{
		CategoryID: &empty,
	}, cookie)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	value, present := gotUpdates["category_id"]
	if !present {
		t.Fatal("expected category_id in the update set")
	}
	if value != nil {
		t.Errorf("empty category id should clear the column, got %v", value)
	}
}

func TestUpdateProductNoFields(t *testing.T) {
	app, _, cookie := saleTestApp(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPut, "/api/products/"+testProductID, UpdateProductPayload{}, cookie)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	app, _, cookie := saleTestApp(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodDelete, "/api/products/"+testProductID, nil, cookie)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}
