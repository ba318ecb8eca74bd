package csrf_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/csrf"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	handler := csrf.Middleware(m)(okHandler())

	do := func(req *http.Request) int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("safe methods pass without token", func(t *testing.T) {
		t.Parallel()
		for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
			assert.Equal(t, http.StatusNoContent, do(httptest.NewRequest(method, "/", nil)), method)
		}
	})

	t.Run("post without token is forbidden", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusForbidden, do(httptest.NewRequest(http.MethodPost, "/", nil)))
	})

	t.Run("header token passes once", func(t *testing.T) {
		t.Parallel()
		token, err := m.Generate(context.Background())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(csrf.HeaderName, token)
		assert.Equal(t, http.StatusNoContent, do(req))

		replay := httptest.NewRequest(http.MethodPost, "/", nil)
		replay.Header.Set(csrf.HeaderName, token)
		assert.Equal(t, http.StatusForbidden, do(replay))
	})

	t.Run("form field token", func(t *testing.T) {
		t.Parallel()
		token, err := m.Generate(context.Background())
		require.NoError(t, err)

		form := url.Values{csrf.FormField: {token}, "name": {"Ada"}}
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, http.StatusNoContent, do(req))
	})

	t.Run("unknown token is forbidden", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set(csrf.HeaderName, strings.Repeat("a", csrf.TokenLength))
		assert.Equal(t, http.StatusForbidden, do(req))
	})
}

func TestMiddleware_Options(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	var gotErr error
	handler := csrf.Middleware(m,
		csrf.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusTeapot)
		}),
		csrf.WithSkipFunc(func(r *http.Request) bool { return r.URL.Path == "/webhook" }),
	)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/form", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, gotErr, csrf.ErrTokenMissing)

	req := httptest.NewRequest(http.MethodPost, "/form", nil)
	req.Header.Set(csrf.HeaderName, "bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, gotErr, csrf.ErrInvalidToken)
}

func TestMiddleware_NilManager(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { csrf.Middleware(nil) })
}
