package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/inkstone-dev/inkstone/internal/common"
	"github.com/inkstone-dev/inkstone/internal/userservice"
)

func (app *application) registerFormHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = registerForm{}

	app.render(w, r, http.StatusOK, "register.html", data)
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := registerForm{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	}

	_, session, err := app.userService.RegisterUser(r.Context(), form.Name, form.Email, r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.setFlash(w, "Registration failed. Email address already exists.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		case errors.As(err, &common.ValidationError{}):
			form.Errors = err.(common.ValidationError).Errors
			data := app.newTemplateData(w, r)
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, "register.html", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// the new account is logged in straight away
	app.setSessionCookie(w, session.Plain)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = loginForm{}

	app.render(w, r, http.StatusOK, "login.html", data)
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	_, session, err := app.userService.LoginUser(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			// the same message whether the email exists or not
			app.setFlash(w, "Invalid email or password. Please try again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.setSessionCookie(w, session.Plain)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		err = app.userService.LogoutUser(r.Context(), cookie.Value)
		if err != nil && !errors.As(err, &common.ValidationError{}) {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	app.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentUserHandler is a plain-text identity dump for logged-in users.
func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s, %s, %d, %s\n", user.Name, user.Email, user.ID, user.Role)
}
