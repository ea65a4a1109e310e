package initial

import (
	"context"
	"fmt"
	"time"

	"TextPredict/internal/config"
	"TextPredict/internal/modules/prediction/domain/generator"
	"TextPredict/internal/modules/prediction/infrastructure/cache"
	"TextPredict/internal/modules/prediction/infrastructure/llm"
	"TextPredict/pkg/metrics"
	"TextPredict/pkg/redis"
	"TextPredict/pkg/zlog"

	"go.uber.org/zap"
)

// Resources 进程级共享资源，启动时创建一次，只读共享
type Resources struct {
	Generator generator.Generator
	Redis     *redis.Store
}

// Close 释放资源
func (r *Resources) Close() error {
	if r == nil {
		return nil
	}
	return r.Redis.Close()
}

// NewResources 创建生成器，按配置叠加 Redis 缓存
func NewResources(ctx context.Context, conf *config.Config, rec metrics.Recorder) (*Resources, error) {
	gen, err := llm.NewGeneratorFromConfig(ctx, conf.GeneratorConfig)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	res := &Resources{Generator: gen}

	if !conf.CacheConfig.Enabled {
		return res, nil
	}

	store, err := NewRedisStore(ctx, conf.RedisConfig)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if store == nil {
		zlog.Warn("cacheConfig.enabled is set but redisConfig.host is empty, cache disabled")
		return res, nil
	}

	ttl := time.Duration(conf.CacheConfig.TTLSeconds) * time.Second
	res.Redis = store
	res.Generator = cache.NewCachedGenerator(gen, store, ttl, rec)
	zlog.Info("prediction cache enabled", zap.Duration("ttl", ttl))
	return res, nil
}
