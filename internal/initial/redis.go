package initial

import (
	"context"
	"fmt"
	"time"

	"TextPredict/internal/config"
	"TextPredict/pkg/redis"
	"TextPredict/pkg/zlog"
)

// NewRedisStore 按配置连接 Redis，未配置主机时返回 nil
func NewRedisStore(ctx context.Context, conf config.RedisConfig) (*redis.Store, error) {
	host := conf.Host
	port := conf.Port

	// 如果未配置主机，则跳过 Redis 初始化
	if host == "" {
		zlog.Info("redis not configured, skipping")
		return nil, nil
	}

	if port == 0 {
		port = 6379
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	zlog.Info(fmt.Sprintf("redis connecting: %s", addr))

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store, err := redis.Dial(ctx, redis.Options{
		Addr:         addr,
		Password:     conf.Password,
		DB:           conf.DB,
		PoolSize:     conf.PoolSize,
		MinIdleConns: conf.MinIdleConns,
	})
	if err != nil {
		return nil, err
	}
	zlog.Info("redis connected")
	return store, nil
}
