package ssl

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TlsHandler("example.com", 8443))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestTlsHandlerRedirectsPlainHTTP(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://example.com:8443/" {
		t.Fatalf("unexpected location %q", loc)
	}
	if w.Body.String() == "ok" {
		t.Fatalf("handler should not run on redirect")
	}
}

func TestTlsHandlerPassesHTTPS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("expected pass-through, got %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("security headers missing")
	}
}
