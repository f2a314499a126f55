package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wefixit/internal/model"
	"wefixit/internal/quote"
)

func validQuote() map[string]any {
	return map[string]any{
		"name":          "Ada Lovelace",
		"email":         "ada@example.com",
		"service_type":  "web-dev",
		"project_title": "Shop",
		"description":   "An online shop",
		"features":      []string{"seo", "analytics"},
		"timeline":      "fast",
		"estimate":      1,
	}
}

func TestServicesCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/services", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	cat := decode[quote.Catalog](t, w)
	assert.NotEmpty(t, cat.Services)
	assert.NotEmpty(t, cat.Features)
	assert.Len(t, cat.Timelines, 3)
}

func TestQuoteEstimate(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/quotes/estimate", map[string]any{
		"service_type": "web-dev",
		"features":     []string{"seo", "analytics"},
		"timeline":     "fast",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	b := decode[quote.Breakdown](t, w)
	assert.InDelta(t, 1440.0, b.Total, 1e-9)
	assert.Len(t, b.Features, 2)
}

func TestQuoteSubmit_StoresServerEstimate(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/quotes", validQuote(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[model.QuoteRequest](t, w)
	assert.InDelta(t, 1440.0, q.Estimate, 1e-9)

	w = env.do(http.MethodGet, fmt.Sprintf("/api/v1/quotes/%d", q.ID), nil, "", env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 1440.0, decode[model.QuoteRequest](t, w).Estimate, 1e-9)

	w = env.do(http.MethodGet, "/api/v1/quotes", nil, "", env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.QuoteRequest](t, w), 1)
}

func TestQuoteSubmit_Validation(t *testing.T) {
	env := newTestEnv(t)

	payload := validQuote()
	payload["email"] = "nope"
	delete(payload, "timeline")
	w := env.doJSON(http.MethodPost, "/api/v1/quotes", payload, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "Please enter a valid email", body.Fields["email"])
	assert.Equal(t, "Please select a timeline", body.Fields["timeline"])
}

func TestQuoteExportCSV(t *testing.T) {
	env := newTestEnv(t)
	w := env.doJSON(http.MethodPost, "/api/v1/quotes", validQuote(), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodGet, "/api/v1/quotes?format=csv", nil, "", env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id", records[0][0])
	assert.Contains(t, records[1], "seo;analytics")
	assert.Contains(t, records[1], "ada@example.com")
}

func TestQuoteExportCSV_EscapesFormulas(t *testing.T) {
	env := newTestEnv(t)
	payload := validQuote()
	payload["name"] = "=HYPERLINK(\"http://evil\")"
	payload["company"] = "@SUM(A1)"
	w := env.doJSON(http.MethodPost, "/api/v1/quotes", payload, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/api/v1/quotes?format=csv", nil, "", env.token)
	require.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, records[1], "'=HYPERLINK(\"http://evil\")")
	assert.Contains(t, records[1], "'@SUM(A1)")
}

func TestQuoteList_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	for _, format := range []string{"xml", "CSV", "json"} {
		w := env.do(http.MethodGet, "/api/v1/quotes?format="+format, nil, "", env.token)
		require.Equal(t, http.StatusBadRequest, w.Code, format)
		body := decode[errorBody](t, w)
		assert.Equal(t, "validation_error", body.Error)
		assert.Equal(t, "must be csv", body.Fields["format"])
	}
}
