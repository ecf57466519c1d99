package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/inkstone-dev/inkstone/internal/blogservice"
	"github.com/inkstone-dev/inkstone/internal/userservice"
)

//go:embed templates
var templateFS embed.FS

type templateData struct {
	CurrentYear     int
	Flash           string
	IsAuthenticated bool
	IsAdmin         bool
	CurrentUser     *userservice.User
	Post            *blogservice.Post
	Posts           []blogservice.Post
	Form            any
}

var functions = template.FuncMap{
	"avatarURL": userservice.AvatarURL,
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFS(templateFS, "templates/base.html", page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}

// newTemplateData fills in the fields every page needs: the flash message,
// the current year and the authenticated user resolved by the middleware.
func (app *application) newTemplateData(w http.ResponseWriter, r *http.Request) *templateData {
	user := app.getUserContext(r)

	return &templateData{
		CurrentYear:     time.Now().Year(),
		Flash:           app.popFlash(w, r),
		IsAuthenticated: !user.IsAnonymous(),
		IsAdmin:         user.IsAdmin(),
		CurrentUser:     user,
	}
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("the template %q does not exist", page))
		return
	}

	// render to a buffer first so a template error never produces a torn page
	buf := new(bytes.Buffer)

	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(status)
	buf.WriteTo(w)
}
