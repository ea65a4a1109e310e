package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpServer "TextPredict/api/http"
	"TextPredict/internal/config"
	"TextPredict/internal/initial"
	predictionService "TextPredict/internal/modules/prediction/application/service"
	"TextPredict/pkg/metrics"
	"TextPredict/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort  int
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP prediction server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Override mainConfig.port")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Run gin in debug mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. 加载配置
	var overrides []config.Override
	if cmd.Flags().Changed("port") {
		overrides = append(overrides, func(c *config.Config) {
			c.MainConfig.Port = servePort
		})
	}
	conf, err := config.Load(configPath, overrides...)
	if err != nil {
		return err
	}

	if err := zlog.Init(zlog.Options{
		LogPath:    conf.LogConfig.LogPath,
		Level:      conf.LogConfig.Level,
		MaxSizeMB:  conf.LogConfig.MaxSizeMB,
		MaxBackups: conf.LogConfig.MaxBackups,
		MaxAgeDays: conf.LogConfig.MaxAgeDays,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zlog.Sync()

	if !serveDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 创建共享资源（模型只加载一次）
	ctx := context.Background()
	var prom httpServer.MetricsHandler
	var rec metrics.Recorder = metrics.Noop{}
	if conf.MetricsConfig.Enabled {
		p := metrics.Default(conf.MetricsConfig.Namespace)
		prom, rec = p, p
	}

	res, err := initial.NewResources(ctx, conf, rec)
	if err != nil {
		return err
	}
	defer res.Close()

	svc := predictionService.NewPredictionService(conf.MainConfig.AppName, conf.MainConfig.Version, res.Generator, rec)
	srv := httpServer.NewServer(conf, httpServer.NewEngine(conf, svc, prom))

	// 3. 启动 HTTP 服务
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	// 4. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Fatal("server start failed", zap.Error(err))
		}
		return nil
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
		return err
	}
	zlog.Info("server stopped")
	return nil
}
