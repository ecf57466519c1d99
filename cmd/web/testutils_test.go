package main

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/inkstone-dev/inkstone/internal/blogservice"
	"github.com/inkstone-dev/inkstone/internal/common"
	"github.com/inkstone-dev/inkstone/internal/userservice"
)

func newTestApplication(t *testing.T) (*application, *sql.DB, *common.MockMessageProducer) {
	t.Helper()

	db := common.TestDB(t)
	broker := &common.MockMessageProducer{}

	templateCache, err := newTemplateCache()
	if err != nil {
		t.Fatalf("could not build template cache: %v", err)
	}

	cfg := &Config{
		Environment:    "test",
		SessionSecret:  "test-session-secret",
		LimiterRPS:     100,
		LimiterBurst:   100,
		LimiterEnabled: false,
	}

	app := &application{
		config:        cfg,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		templateCache: templateCache,
		userService:   userservice.NewUserService(db, broker, cfg.SessionSecret),
		blogService:   blogservice.NewBlogService(db),
		broker:        broker,
	}

	return app, db, broker
}

type testServer struct {
	*httptest.Server
}

// newTestServer wraps the handler in a server whose client keeps cookies
// between requests and never follows redirects, so tests can assert on the
// 3xx responses themselves.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("could not create cookie jar: %v", err)
	}

	ts.Client().Jar = jar
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().Get(ts.URL + urlPath)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, string(body)
}

func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().PostForm(ts.URL+urlPath, form)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, string(body)
}

func (ts *testServer) register(t *testing.T, name, email, password string) {
	t.Helper()

	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)
	form.Set("password", password)

	code, _, _ := ts.postForm(t, "/register", form)
	if code != http.StatusSeeOther {
		t.Fatalf("registration of %s failed with status %d", email, code)
	}
}

func (ts *testServer) login(t *testing.T, email, password string) {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	code, headers, _ := ts.postForm(t, "/login", form)
	if code != http.StatusSeeOther || headers.Get("Location") != "/" {
		t.Fatalf("login of %s failed with status %d", email, code)
	}
}

func (ts *testServer) logout(t *testing.T) {
	t.Helper()

	code, _, _ := ts.postForm(t, "/logout", url.Values{})
	if code != http.StatusSeeOther {
		t.Fatalf("logout failed with status %d", code)
	}
}

func (ts *testServer) createPost(t *testing.T, title, subtitle, body, imgURL string) {
	t.Helper()

	form := url.Values{}
	form.Set("title", title)
	form.Set("subtitle", subtitle)
	form.Set("body", body)
	form.Set("img_url", imgURL)

	code, _, _ := ts.postForm(t, "/new-post", form)
	if code != http.StatusSeeOther {
		t.Fatalf("creation of post %q failed with status %d", title, code)
	}
}
