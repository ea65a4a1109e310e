package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 服务用到的全部指标
type Recorder interface {
	ObserveRequest(method, route, status string, durationSeconds float64)
	ObserveGeneration(outcome string, durationSeconds float64)
}

// Generation outcome 标签值
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
	OutcomeCached  = "cached"
)

// Prom 基于 prometheus 的 Recorder 实现
type Prom struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	generations *prometheus.CounterVec
	genLatency  *prometheus.HistogramVec
	handler     http.Handler
}

var (
	defaultOnce sync.Once
	defaultProm *Prom
)

// NewProm 在独立 Registry 上构造指标，测试中可多次调用
func NewProm(namespace string) *Prom {
	reg := prometheus.NewRegistry()
	p := newProm(namespace)
	reg.MustRegister(p.requests, p.latency, p.generations, p.genLatency)
	p.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return p
}

// Default 返回注册在全局 Registry 上的指标，进程内只注册一次
func Default(namespace string) *Prom {
	defaultOnce.Do(func() {
		p := newProm(namespace)
		prometheus.MustRegister(p.requests, p.latency, p.generations, p.genLatency)
		p.handler = promhttp.Handler()
		defaultProm = p
	})
	return defaultProm
}

func newProm(namespace string) *Prom {
	return &Prom{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method/route/status",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method/route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction calls by outcome",
		}, []string{"outcome"}),
		genLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Generator call latency by outcome",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"outcome"}),
	}
}

func (p *Prom) ObserveRequest(method, route, status string, durationSeconds float64) {
	p.requests.WithLabelValues(method, route, status).Inc()
	p.latency.WithLabelValues(method, route).Observe(durationSeconds)
}

func (p *Prom) ObserveGeneration(outcome string, durationSeconds float64) {
	p.generations.WithLabelValues(outcome).Inc()
	if outcome != OutcomeInvalid {
		p.genLatency.WithLabelValues(outcome).Observe(durationSeconds)
	}
}

// Handler 返回 /metrics 的 HTTP handler
func (p *Prom) Handler() http.Handler {
	return p.handler
}

// Noop 不记录任何指标
type Noop struct{}

func (Noop) ObserveRequest(string, string, string, float64) {}
func (Noop) ObserveGeneration(string, float64)              {}
