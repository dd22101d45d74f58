package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newTestEngine(RequestID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if id := w.Header().Get(RequestIDHeader); id == "" {
		t.Error("no request id echoed in response headers")
	}
}

func TestRequestIDHonorsClientValue(t *testing.T) {
	r := newTestEngine(RequestID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-chosen")
	r.ServeHTTP(w, req)

	if id := w.Header().Get(RequestIDHeader); id != "client-chosen" {
		t.Errorf("request id = %q, want client-chosen", id)
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	// one request per minute, burst 1
	t.Setenv("RATE_LIMIT_PER_MINUTE", "1")
	r := newTestEngine(RateLimitMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w.Code)
	}
}
