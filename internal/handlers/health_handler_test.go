package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

func runHealthcheck(handler *HealthHandler) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/healthcheck", handler.Healthcheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthcheck", http.NoBody)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler_Healthcheck(t *testing.T) {
	handler := NewHealthHandler(
		func(ctx context.Context) error { return nil },
		func() bool { return true },
	)

	w := runHealthcheck(handler)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	handler := NewHealthHandler(
		func(ctx context.Context) error { return errors.New("connection refused") },
		func() bool { return true },
	)

	w := runHealthcheck(handler)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","reason":"database unreachable"}`, w.Body.String())
}

func TestHealthHandler_CacheNotReady(t *testing.T) {
	handler := NewHealthHandler(nil, func() bool { return false })

	w := runHealthcheck(handler)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "mentor cache not initialized")
}
