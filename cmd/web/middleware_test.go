package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-dev/inkstone/internal/userservice"
)

func TestRecoverPanic(t *testing.T) {
	app, _, _ := newTestApplication(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	app.recoverPanic(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
}

func TestAuthenticate(t *testing.T) {
	app, _, _ := newTestApplication(t)

	var seen *userservice.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = app.getUserContext(r)
	})

	t.Run("no cookie", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		app.authenticate(next).ServeHTTP(rr, r)

		assert.True(t, seen.IsAnonymous())
	})

	t.Run("malformed token is cleared", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "too-short"})

		app.authenticate(next).ServeHTTP(rr, r)

		assert.True(t, seen.IsAnonymous())

		cookies := rr.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, sessionCookieName, cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("unknown token is cleared", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"})

		app.authenticate(next).ServeHTTP(rr, r)

		assert.True(t, seen.IsAnonymous())
	})

	t.Run("valid token resolves the user", func(t *testing.T) {
		_, session, err := app.userService.RegisterUser(context.Background(), "Alice", "alice@example.com", "password123")
		assert.NoError(t, err)

		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session.Plain})

		app.authenticate(next).ServeHTTP(rr, r)

		assert.Equal(t, "alice@example.com", seen.Email)
		assert.True(t, seen.IsAdmin())
	})
}

func TestRequireAuthUser(t *testing.T) {
	app, _, _ := newTestApplication(t)

	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = app.createUserContext(r, &userservice.AnonymousUser)

		app.requireAuthUser(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = app.createUserContext(r, &userservice.User{ID: 1, Role: userservice.RoleMember})

		app.requireAuthUser(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRequireAdminUser(t *testing.T) {
	app, _, _ := newTestApplication(t)

	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name     string
		user     *userservice.User
		wantCode int
	}{
		{name: "anonymous", user: &userservice.AnonymousUser, wantCode: http.StatusForbidden},
		{name: "member", user: &userservice.User{ID: 2, Role: userservice.RoleMember}, wantCode: http.StatusForbidden},
		{name: "admin", user: &userservice.User{ID: 1, Role: userservice.RoleAdmin}, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = app.createUserContext(r, tt.user)

			app.requireAdminUser(next).ServeHTTP(rr, r)

			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	app, _, _ := newTestApplication(t)
	app.config.LimiterEnabled = true
	app.config.LimiterRPS = 2
	app.config.LimiterBurst = 2

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	limited := app.rateLimit(next)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:50000"

		limited.ServeHTTP(rr, r)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitPerIP(t *testing.T) {
	app, _, _ := newTestApplication(t)
	app.config.LimiterEnabled = true
	app.config.LimiterRPS = 1
	app.config.LimiterBurst = 1

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	limited := app.rateLimit(next)

	for i, addr := range []string{"10.0.0.1:50000", "10.0.0.2:50000"} {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr

		limited.ServeHTTP(rr, r)
		assert.Equal(t, http.StatusOK, rr.Code, "request %d", i)
	}
}
