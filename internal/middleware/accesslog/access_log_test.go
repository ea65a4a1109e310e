package accesslog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"TextPredict/internal/middleware/requestid"
	"TextPredict/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordedRequest struct {
	method, route, status string
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) ObserveRequest(method, route, status string, _ float64) {
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func (f *fakeRecorder) ObserveGeneration(string, float64) {}

func TestAccessLogRecordsRouteAndStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zlog.SetLogger(zap.New(core))
	t.Cleanup(func() { zlog.SetLogger(nil) })

	gin.SetMode(gin.TestMode)
	rec := &fakeRecorder{}
	r := gin.New()
	r.Use(requestid.RequestID(), AccessLog(rec))
	r.POST("/predict", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/predict", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if len(rec.requests) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(rec.requests))
	}
	if rec.requests[0] != (recordedRequest{"POST", "/predict", "422"}) {
		t.Fatalf("unexpected observation %+v", rec.requests[0])
	}
	if rec.requests[1].route != "unmatched" || rec.requests[1].status != "404" {
		t.Fatalf("unexpected observation %+v", rec.requests[1])
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 2 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected log entries %+v", entries)
	}
	if entries[0].ContextMap()["request_id"] == "" {
		t.Fatalf("request id not logged")
	}
}
