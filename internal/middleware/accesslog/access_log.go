package accesslog

import (
	"strconv"
	"time"

	"TextPredict/internal/middleware/requestid"
	"TextPredict/pkg/metrics"
	"TextPredict/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog 记录访问日志并上报请求指标
func AccessLog(rec metrics.Recorder) gin.HandlerFunc {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		rec.ObserveRequest(c.Request.Method, route, strconv.Itoa(status), elapsed.Seconds())

		fields := []zap.Field{
			zap.String("request_id", requestid.Get(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= 500:
			zlog.Error("http request", fields...)
		case status >= 400:
			zlog.Warn("http request", fields...)
		default:
			zlog.Info("http request", fields...)
		}
	}
}
