package main

import (
	"encoding/json"
	"net/http"

	"github.com/inkstone-dev/inkstone/internal/common"
)

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	app.render(w, r, http.StatusOK, "about.html", data)
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = contactForm{}

	app.render(w, r, http.StatusOK, "contact.html", data)
}

// contactSubmitHandler publishes the message for the mail consumer; the page
// itself never talks SMTP.
func (app *application) contactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := contactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}

	v := common.NewValidator()
	v.Check(form.Name != "", "name", "must be provided")
	v.Check(form.Email != "", "email", "must be provided")
	v.Check(form.Message != "", "message", "must be provided")
	if !v.Valid() {
		form.Errors = v.Errors
		data := app.newTemplateData(w, r)
		data.Form = form
		app.render(w, r, http.StatusUnprocessableEntity, "contact.html", data)
		return
	}

	msg, err := json.Marshal(form)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.broker.Publish(r.Context(), msg, common.ContactMessageKey, common.MailExchange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setFlash(w, "Thanks for your message. We will get back to you soon.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
