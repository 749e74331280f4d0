package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	router "msgrelay/internal/app/adapters/http"
	"msgrelay/internal/app/infrastructure/config"
	"msgrelay/internal/app/infrastructure/storage"
	"msgrelay/internal/app/infrastructure/token"
	"msgrelay/pkg/logger"
)

type sendResp struct {
	ID        string `json:"id"`
	ExpiresIn int    `json:"expires_in"`
	Link      string `json:"link"`
	Error     string `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := config.New(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	require.NoError(t, manager.Update(func(cfg *config.Config) {
		// Keep the limiter out of functional tests.
		cfg.Limiter = config.Limiter{}
	}))

	log := logger.New()
	store := storage.New(log, token.New(4), 8)
	return router.NewRouter(log, manager, store).Handler()
}

func doSend(t *testing.T, h http.Handler, body string) (int, sendResp) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/send", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)

	var resp sendResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func doRecv(t *testing.T, h http.Handler, id string) (int, map[string]string) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recv/"+id, nil)
	h.ServeHTTP(w, req)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestSendRecvFlow(t *testing.T) {
	h := newTestRouter(t)

	code, created := doSend(t, h, `{"text":"hello there"}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 60, created.ExpiresIn, "default ttl")
	assert.Equal(t, "/recv/"+created.ID+"/view", created.Link)

	code, body := doRecv(t, h, created.ID)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "hello there", body["text"])

	// Single view by default: the second read is gone.
	code, body = doRecv(t, h, created.ID)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "message not found or expired", body["error"])
}

func TestSendMultiView(t *testing.T) {
	h := newTestRouter(t)

	code, created := doSend(t, h, `{"text":"twice","max_views":2,"ttl":120}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 120, created.ExpiresIn)

	for i := 0; i < 2; i++ {
		code, body := doRecv(t, h, created.ID)
		require.Equal(t, http.StatusOK, code, "view %d", i+1)
		assert.Equal(t, "twice", body["text"])
	}

	code, _ = doRecv(t, h, created.ID)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSendValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "empty text", body: `{"text":""}`, wantCode: http.StatusBadRequest},
		{name: "whitespace text", body: `{"text":"   "}`, wantCode: http.StatusBadRequest},
		{name: "negative ttl", body: `{"text":"x","ttl":-5}`, wantCode: http.StatusBadRequest},
		{name: "negative views", body: `{"text":"x","max_views":-1}`, wantCode: http.StatusBadRequest},
		{name: "not json", body: `text=hi`, wantCode: http.StatusBadRequest},
		{name: "valid", body: `{"text":"x"}`, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := doSend(t, h, tt.body)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestSendClampsToConfiguredMaxima(t *testing.T) {
	h := newTestRouter(t)

	// Default max_ttl is 24h; a year-long request comes back clamped.
	code, created := doSend(t, h, `{"text":"x","ttl":31536000}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int((24 * time.Hour).Seconds()), created.ExpiresIn)
}

func TestRecvUnknownID(t *testing.T) {
	h := newTestRouter(t)

	code, body := doRecv(t, h, "deadbeef")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "message not found or expired", body["error"])
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	_, created := doSend(t, h, `{"text":"one"}`)
	require.NotEmpty(t, created.ID)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(1), resp["messages"])
}

func TestViewPage(t *testing.T) {
	h := newTestRouter(t)

	_, created := doSend(t, h, `{"text":"page","ttl":60}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recv/"+created.ID+"/view", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	// The page never consumes the view.
	code, body := doRecv(t, h, created.ID)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "page", body["text"])
}

func TestViewPageRejectsMalformedID(t *testing.T) {
	h := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recv/%3Cscript%3E/view", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestIndexPage(t *testing.T) {
	h := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestMetricsAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manager, err := config.New(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	require.NoError(t, manager.Update(func(cfg *config.Config) {
		cfg.App.AuthToken = "sekret"
	}))

	log := logger.New()
	store := storage.New(log, token.New(4), 8)
	h := router.NewRouter(log, manager, store).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("admin", "sekret")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
