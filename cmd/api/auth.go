package main

import (
	"errors"
	"net/http"

	"duka/internal/store"
)

type LoginPayload struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
	Password    string `json:"password" validate:"required,min=3,max=72"`
}

type SessionUser struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	PhoneNumber string     `json:"phoneNumber"`
	Role        store.Role `json:"role"`
	Status      string     `json:"status"`
}

func sessionUser(u *store.User) SessionUser {
	return SessionUser{
		ID:          u.ID,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Status:      u.Status,
	}
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	user, err := app.store.Users.GetByPhoneNumber(ctx, payload.PhoneNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, "Invalid credentials")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.verifier.Verify(user.PasswordHash, payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, "Invalid credentials")
		return
	}

	if user.Status != store.StatusActive {
		app.unauthorizedErrorResponse(w, r, "Account is not active")
		return
	}

	token, err := app.sessions.Create(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setSessionCookie(w, token)

	type loginResponse struct {
		Message string      `json:"message"`
		User    SessionUser `json:"user"`
	}
	app.jsonResponse(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    sessionUser(user),
	})
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		if err := app.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	app.clearSessionCookie(w)

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		app.notFoundResponse(w, r, "User not found")
		return
	}

	app.jsonResponse(w, http.StatusOK, sessionUser(user))
}
