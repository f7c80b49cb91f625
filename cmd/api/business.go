package main

import (
	"errors"
	"net/http"

	"duka/internal/store"
)

// resolveBusiness maps the session user to their business, the precondition
// for every operational endpoint.
func (app *application) resolveBusiness(w http.ResponseWriter, r *http.Request) (*store.Business, bool) {
	user := getUserFromContext(r)

	business, err := app.store.Businesses.GetByOwner(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "Business not found")
			return nil, false
		}
		app.internalServerError(w, r, err)
		return nil, false
	}
	return business, true
}

func (app *application) getBusinessHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	app.jsonResponse(w, http.StatusOK, business)
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status": "ok",
		"env":    app.config.env,
	}
	app.jsonResponse(w, http.StatusOK, data)
}
