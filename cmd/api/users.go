package main

import (
	"errors"
	"net/http"

	"duka/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateUserPayload struct {
	FullName     string `json:"fullName" validate:"required,max=100"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,max=20"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	Role         string `json:"role" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
	BusinessName string `json:"businessName" validate:"omitempty,max=100"`
}

func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	actor := getUserFromContext(r)

	roleFilter := r.URL.Query().Get("role")

	if roleFilter == "" {
		if !actor.Role.CanListAllUsers() {
			app.forbiddenResponse(w, r, "Insufficient permissions")
			return
		}
		users, err := app.store.Users.List(r.Context())
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		app.jsonResponse(w, http.StatusOK, users)
		return
	}

	role, err := store.ParseRole(roleFilter)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !actor.Role.CanManage(role) {
		app.forbiddenResponse(w, r, "Insufficient permissions")
		return
	}

	users, err := app.store.Users.ListByRole(r.Context(), role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, users)
}

func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	actor := getUserFromContext(r)

	var payload CreateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	role, err := store.ParseRole(payload.Role)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !actor.Role.CanCreate(role) {
		app.forbiddenResponse(w, r, "Cannot create this user role")
		return
	}

	hash, err := app.verifier.Hash(payload.Password)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	user := &store.User{
		FullName:     payload.FullName,
		PhoneNumber:  payload.PhoneNumber,
		PasswordHash: hash,
		Role:         role,
		Status:       store.StatusActive,
		Email:        store.NewNullString(payload.Email),
		BusinessName: store.NewNullString(payload.BusinessName),
		CreatedByID:  store.NewNullString(actor.ID),
	}

	ctx := r.Context()

	if role == store.RoleMerchant {
		businessName := payload.BusinessName
		if businessName == "" {
			businessName = payload.FullName
		}
		business := &store.Business{Name: businessName}
		err = app.store.Users.CreateMerchant(ctx, user, business)
	} else {
		err = app.store.Users.Create(ctx, user)
	}
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePhoneNumber) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, user)
}

type UpdateStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

func (app *application) updateUserStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor := getUserFromContext(r)
	userID := chi.URLParam(r, "userID")

	var payload UpdateStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !store.ValidStatus(payload.Status) {
		app.badRequestResponse(w, r, errors.New("invalid status"))
		return
	}

	ctx := r.Context()

	target, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "User not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !actor.Role.CanManage(target.Role) {
		app.forbiddenResponse(w, r, "Insufficient permissions")
		return
	}

	updated, err := app.store.Users.UpdateStatus(ctx, userID, payload.Status)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, updated)
}

func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor := getUserFromContext(r)
	userID := chi.URLParam(r, "userID")

	if !actor.Role.CanDeleteUsers() {
		app.forbiddenResponse(w, r, "Insufficient permissions")
		return
	}

	if userID == actor.ID {
		app.badRequestResponse(w, r, errors.New("cannot delete your own account"))
		return
	}

	if err := app.store.Users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, "User not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
