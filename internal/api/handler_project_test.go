package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wefixit/internal/model"
)

func createProject(t *testing.T, env *testEnv, fields map[string]string) model.Project {
	t.Helper()
	body, ct := multipartBody(t, fields, "shot.png")
	w := env.do(http.MethodPost, "/api/v1/projects", body, ct, env.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Project](t, w)
}

func uploadedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProjectCreate_RequiresImage(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, map[string]string{
		"title":       "Bakery site",
		"description": "Landing page",
		"category":    "web",
	}, "")
	w := env.do(http.MethodPost, "/api/v1/projects", body, ct, env.token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", decode[errorBody](t, w).Fields["image"])
}

func TestProjectCreate_WithImage(t *testing.T) {
	env := newTestEnv(t)

	p := createProject(t, env, map[string]string{
		"title":        "Bakery site",
		"description":  "Landing page",
		"category":     "web",
		"technologies": "go, react",
		"featured":     "true",
	})
	assert.Positive(t, p.ID)
	assert.True(t, strings.HasPrefix(p.Image, "/uploads/"))
	assert.Equal(t, []string{"go", "react"}, p.Technologies)
	assert.True(t, p.Featured)

	w := env.do(http.MethodGet, p.Image, nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/projects?featured=true", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[model.ProjectPage](t, w)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, p.ID, page.Items[0].ID)
}

func TestProjectCreate_MissingTitleDiscardsUpload(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, map[string]string{"category": "web"}, "shot.png")
	w := env.do(http.MethodPost, "/api/v1/projects", body, ct, env.token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Fields, "title")
	assert.Empty(t, uploadedFiles(t, env.uploadDir))
}

func TestProjectCreate_RejectsBadExtension(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, map[string]string{"title": "x"}, "payload.svg")
	w := env.do(http.MethodPost, "/api/v1/projects", body, ct, env.token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Fields, "image")
	assert.Empty(t, uploadedFiles(t, env.uploadDir))
}

func TestProjectList_BadQuery(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"featured=maybe", "limit=abc", "limit=1000", "offset=-1"} {
		w := env.do(http.MethodGet, "/api/v1/projects?"+q, nil, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	w := env.do(http.MethodGet, "/api/v1/projects", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestProjectUpdate_Partial(t *testing.T) {
	env := newTestEnv(t)
	p := createProject(t, env, map[string]string{
		"title":       "Old",
		"description": "Keep me",
		"category":    "web",
	})

	body, ct := multipartBody(t, map[string]string{"title": "New"}, "")
	w := env.do(http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", p.ID), body, ct, env.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[model.Project](t, w)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Keep me", got.Description)
	assert.Equal(t, p.Image, got.Image)
}

func TestProjectUpdate_ReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	p := createProject(t, env, map[string]string{"title": "Shop"})

	body, ct := multipartBody(t, nil, "new.jpg")
	w := env.do(http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", p.ID), body, ct, env.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[model.Project](t, w)
	assert.NotEqual(t, p.Image, got.Image)
	assert.Equal(t, []string{filepath.Base(got.Image)}, uploadedFiles(t, env.uploadDir))
}

func TestProjectSetFeatured(t *testing.T) {
	env := newTestEnv(t)
	p := createProject(t, env, map[string]string{"title": "Portfolio"})
	path := fmt.Sprintf("/api/v1/projects/%d/featured", p.ID)

	w := env.doJSON(http.MethodPatch, path, map[string]bool{"featured": true}, env.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[model.Project](t, w).Featured)

	w = env.doJSON(http.MethodPatch, path, map[string]string{}, env.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectDelete_RemovesImage(t *testing.T) {
	env := newTestEnv(t)
	p := createProject(t, env, map[string]string{"title": "Gone soon"})
	require.Len(t, uploadedFiles(t, env.uploadDir), 1)

	w := env.do(http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", p.ID), nil, "", env.token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, uploadedFiles(t, env.uploadDir))

	w = env.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", p.ID), nil, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
