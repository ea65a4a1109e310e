package http

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"TextPredict/internal/config"
	predictionService "TextPredict/internal/modules/prediction/application/service"
	"TextPredict/internal/modules/prediction/infrastructure/llm"
	"TextPredict/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T, prom MetricsHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conf := config.Default()
	var rec metrics.Recorder
	if prom != nil {
		rec = prom
	}
	svc := predictionService.NewPredictionService(conf.MainConfig.AppName, conf.MainConfig.Version, llm.NewEchoGenerator(), rec)
	return NewEngine(conf, svc, prom)
}

func TestEngineServesRootAndPredict(t *testing.T) {
	r := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"message":"Text Prediction API","version":"1.0"}` {
		t.Fatalf("unexpected root response %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(`{"text": " echo me "}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != `{"prediction":"echo me","input_length":7,"generated_length":0}` {
		t.Fatalf("unexpected predict response %d %s", w.Code, w.Body.String())
	}
}

func TestEngineCorsPreflight(t *testing.T) {
	r := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("credentials not allowed: %q", got)
	}
}

func TestEngineCorsRejectsUnknownOriginPreflight(t *testing.T) {
	r := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown origin preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestEngineUnknownOriginSimpleRequestPassesWithoutCorsHeaders(t *testing.T) {
	r := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(`{"text":"Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != `{"prediction":"Hi","input_length":2,"generated_length":0}` {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unknown origin must not get allow origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("unknown origin must not get credentials header, got %q", got)
	}
}

func TestEngineMetricsAndHealth(t *testing.T) {
	prom := metrics.NewProm("textpredict_test")
	r := newTestEngine(t, prom)

	for _, path := range []string{"/", "/healthz"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, w.Code)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(`{}`))
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		`textpredict_test_http_requests_total{method="GET",route="/healthz",status="200"} 1`,
		`textpredict_test_predictions_total{outcome="invalid"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestEngineWithoutMetricsHasNoEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestServerRunAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping: unable to listen on ipv4 loopback (%v)", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	conf := config.Default()
	conf.MainConfig.Host = "127.0.0.1"
	conf.MainConfig.Port = port
	srv := NewServer(conf, newTestEngine(t, nil))

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/healthz"
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	_ = resp.Body.Close()

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after shutdown")
	}
}
