package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/inkstone-dev/inkstone/internal/blogservice"
	"github.com/inkstone-dev/inkstone/internal/common"
)

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.blogService.ListPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := app.newTemplateData(w, r)
	data.Posts = posts

	app.render(w, r, http.StatusOK, "home.html", data)
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	data := app.newTemplateData(w, r)
	data.Post = post
	data.Form = commentForm{}

	app.render(w, r, http.StatusOK, "post.html", data)
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := commentForm{
		Body: r.PostFormValue("comment"),
	}

	user := app.getUserContext(r)

	_, err = app.blogService.AddComment(r.Context(), form.Body, user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			post, postErr := app.blogService.GetPostByID(r.Context(), id)
			if postErr != nil {
				app.serverErrorResponse(w, r, postErr)
				return
			}

			form.Errors = err.(common.ValidationError).Errors
			data := app.newTemplateData(w, r)
			data.Post = post
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, "post.html", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (app *application) newPostFormHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = postForm{}

	app.render(w, r, http.StatusOK, "make-post.html", data)
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := postForm{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
	}

	user := app.getUserContext(r)

	req := blogservice.CreatePostRequest{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		UserID:   user.ID,
	}

	_, err = app.blogService.CreatePost(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			form.Errors = map[string]string{"title": "a post with this title already exists"}
			data := app.newTemplateData(w, r)
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.html", data)
		case errors.As(err, &common.ValidationError{}):
			form.Errors = err.(common.ValidationError).Errors
			data := app.newTemplateData(w, r)
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.html", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) editPostFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	data := app.newTemplateData(w, r)
	data.Form = postForm{
		ID:       post.ID,
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Body:     post.Body,
		ImgURL:   post.ImgURL,
		IsEdit:   true,
	}

	app.render(w, r, http.StatusOK, "make-post.html", data)
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := postForm{
		ID:       id,
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
		IsEdit:   true,
	}

	post := blogservice.Post{
		ID:       id,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	}

	err = app.blogService.UpdatePost(r.Context(), &post)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			form.Errors = map[string]string{"title": "a post with this title already exists"}
			data := app.newTemplateData(w, r)
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.html", data)
		case errors.As(err, &common.ValidationError{}):
			form.Errors = err.(common.ValidationError).Errors
			data := app.newTemplateData(w, r)
			data.Form = form
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.html", data)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.blogService.DeletePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
