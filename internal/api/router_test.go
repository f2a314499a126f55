package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbes(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/healthz", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = env.do(http.MethodHead, "/healthz", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/readyz", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())

	w = env.do(http.MethodGet, "/metrics", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadyz_StoreDown(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	w := env.do(http.MethodGet, "/readyz", nil, "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "sql")
}

func TestTraceIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Trace-ID", "abc123")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, "abc123", w.Header().Get("X-Trace-ID"))
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/quotes"},
		{http.MethodGet, "/api/v1/quotes/1"},
		{http.MethodPost, "/api/v1/projects"},
		{http.MethodPut, "/api/v1/projects/1"},
		{http.MethodPatch, "/api/v1/projects/1/featured"},
		{http.MethodDelete, "/api/v1/projects/1"},
		{http.MethodGet, "/api/v1/reviews/all"},
		{http.MethodPatch, "/api/v1/reviews/1/approve"},
		{http.MethodDelete, "/api/v1/reviews/1"},
		{http.MethodGet, "/api/v1/contact"},
		{http.MethodDelete, "/api/v1/contact/1"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := env.do(r.method, r.path, nil, "", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decode[errorBody](t, w)
			assert.Equal(t, "unauthorized", body.Error)

			w = env.do(r.method, r.path, nil, "", "not-a-jwt")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/nope", nil, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[errorBody](t, w).Error)
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	w := env.do(http.MethodGet, "/api/v1/reviews", nil, "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode[errorBody](t, w)
	assert.Equal(t, "internal_error", body.Error)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "database")
	assert.NotContains(t, w.Body.String(), "persistence")
}
