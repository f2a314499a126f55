package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wefixit/internal/repository/sqlite"
	"wefixit/internal/service"
	"wefixit/internal/upload"
	"wefixit/pkg/db"
)

const (
	testSecret   = "test-secret"
	testAdmin    = "admin"
	testPassword = "correct horse battery"
)

type testEnv struct {
	router    *gin.Engine
	db        *sql.DB
	uploadDir string
	token     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	log := zap.NewNop()

	conn, err := db.OpenSQLite(ctx, ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, sqlite.Migrate(ctx, conn))

	dir := t.TempDir()
	images, err := upload.NewStore(dir, 0)
	require.NoError(t, err)

	auth := service.NewAuthService(sqlite.NewAdminRepository(conn), nil, testSecret, time.Hour, log)
	require.NoError(t, auth.Bootstrap(ctx, testAdmin, testPassword))

	pub := service.NopPublisher{}
	router := NewRouter(Deps{
		Auth:      auth,
		Projects:  service.NewProjectService(sqlite.NewProjectRepository(conn), images, pub, log),
		Reviews:   service.NewReviewService(sqlite.NewReviewRepository(conn), nil, pub, log),
		Quotes:    service.NewQuoteService(sqlite.NewQuoteRepository(conn), pub, log),
		Contacts:  service.NewContactService(sqlite.NewContactRepository(conn), pub, log),
		Images:    images,
		UploadDir: dir,
		Pinger:    sqlite.NewPinger(conn),
		JWTSecret: testSecret,
		Logger:    log,
	})

	env := &testEnv{router: router, db: conn, uploadDir: dir}
	env.token = env.login(t, testAdmin, testPassword)
	return env
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func (e *testEnv) do(method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(method, path string, payload any, token string) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	return e.do(method, path, body, "application/json", token)
}

// multipartBody builds a form; a non-empty filename adds an "image" part.
func multipartBody(t *testing.T, fields map[string]string, filename string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nfake image"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
