package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// public pages
	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/about", app.aboutHandler)
	router.HandlerFunc(http.MethodGet, "/contact", app.contactHandler)
	router.HandlerFunc(http.MethodPost, "/contact", app.contactSubmitHandler)
	router.HandlerFunc(http.MethodGet, "/post/:id", app.showPostHandler)

	// account
	router.HandlerFunc(http.MethodGet, "/register", app.registerFormHandler)
	router.HandlerFunc(http.MethodPost, "/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/login", app.loginFormHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/logout", app.logoutUserHandler)
	router.HandlerFunc(http.MethodGet, "/currentuser", app.requireAuthUser(app.currentUserHandler))

	// commenting happens at the route boundary, so anonymous submissions are
	// rejected before any handler logic runs
	router.HandlerFunc(http.MethodPost, "/post/:id", app.requireAuthUser(app.createCommentHandler))

	// post management
	router.HandlerFunc(http.MethodGet, "/new-post", app.requireAdminUser(app.newPostFormHandler))
	router.HandlerFunc(http.MethodPost, "/new-post", app.requireAdminUser(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/edit-post/:id", app.requireAdminUser(app.editPostFormHandler))
	router.HandlerFunc(http.MethodPost, "/edit-post/:id", app.requireAdminUser(app.updatePostHandler))
	router.HandlerFunc(http.MethodPost, "/delete/:id", app.requireAdminUser(app.deletePostHandler))

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
