package main

import (
	"net/http"

	"duka/internal/store"
)

type CreateCategoryPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	categories, err := app.store.Categories.List(r.Context(), business.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, categories)
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	var payload CreateCategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category := &store.Category{
		Name:        payload.Name,
		Description: store.NewNullString(payload.Description),
		BusinessID:  business.ID,
	}

	if err := app.store.Categories.Create(r.Context(), category); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, category)
}
