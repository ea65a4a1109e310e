package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"TextPredict/internal/config"
	"TextPredict/internal/middleware/accesslog"
	"TextPredict/internal/middleware/requestid"
	predictionService "TextPredict/internal/modules/prediction/application/service"
	predictionHandler "TextPredict/internal/modules/prediction/interface/http"
	"TextPredict/pkg/metrics"
	"TextPredict/pkg/ssl"
	"TextPredict/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 浏览器带凭证请求时不认通配符，这里显式列出
var (
	corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestid.Header}
)

// MetricsHandler 由 metrics.Prom 实现
type MetricsHandler interface {
	metrics.Recorder
	Handler() http.Handler
}

// NewEngine 组装中间件与路由
//
// prom 为 nil 时不暴露 /metrics。
func NewEngine(conf *config.Config, svc predictionService.PredictionService, prom MetricsHandler) *gin.Engine {
	var rec metrics.Recorder = metrics.Noop{}
	if prom != nil {
		rec = prom
	}

	ge := gin.New()
	ge.Use(gin.Recovery())
	ge.Use(requestid.RequestID())
	ge.Use(accesslog.AccessLog(rec))

	origins := conf.CorsConfig.AllowOrigins
	if len(origins) == 0 {
		origins = config.Default().CorsConfig.AllowOrigins
	}
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = corsMethods
	corsConfig.AllowHeaders = corsHeaders
	corsConfig.ExposeHeaders = []string{requestid.Header}
	ge.Use(corsHandler(corsConfig))

	if conf.MainConfig.TLS {
		ge.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	predictionH := predictionHandler.NewPredictionHandler(svc)

	ge.GET("/", predictionH.Root)
	ge.POST("/predict", predictionH.Predict)
	ge.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if prom != nil {
		ge.GET("/metrics", gin.WrapH(prom.Handler()))
	}

	return ge
}

// corsHandler 未知来源的预检请求由 cors 拒绝；普通请求照常处理，只是不带 CORS 头
func corsHandler(corsConfig cors.Config) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(corsConfig.AllowOrigins))
	for _, o := range corsConfig.AllowOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}
	handle := cors.New(corsConfig)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[strings.ToLower(origin)]; origin != "" && !ok && c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		handle(c)
	}
}

// Server HTTP 服务，支持优雅关闭
type Server struct {
	conf *config.Config
	srv  *http.Server
}

func NewServer(conf *config.Config, handler http.Handler) *Server {
	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
	return &Server{
		conf: conf,
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run 阻塞直到服务退出；Shutdown 触发的退出返回 nil
func (s *Server) Run() error {
	zlog.Info("server starting", zap.String("addr", s.srv.Addr), zap.Bool("tls", s.conf.MainConfig.TLS))

	var err error
	if s.conf.MainConfig.TLS {
		err = s.srv.ListenAndServeTLS(s.conf.MainConfig.CertFile, s.conf.MainConfig.KeyFile)
	} else {
		err = s.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown 在超时时间内等待进行中的请求完成
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := time.Duration(s.conf.MainConfig.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
