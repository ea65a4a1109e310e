package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"TextPredict/internal/modules/prediction/domain/generator"
	"TextPredict/pkg/metrics"
	"TextPredict/pkg/zlog"

	"go.uber.org/zap"
)

// CacheInterface 缓存接口定义
type CacheInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const keyPrefix = "textpredict:gen:"

// CachedGenerator 在生成器前加一层缓存。
// 缓存读写失败只记日志，不影响生成；生成失败不写缓存。
type CachedGenerator struct {
	next    generator.Generator
	cache   CacheInterface
	ttl     time.Duration
	metrics metrics.Recorder
}

func NewCachedGenerator(next generator.Generator, cache CacheInterface, ttl time.Duration, rec metrics.Recorder) *CachedGenerator {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &CachedGenerator{next: next, cache: cache, ttl: ttl, metrics: rec}
}

func (g *CachedGenerator) Generate(ctx context.Context, text string, maxLength int, numSequences int) ([]generator.Sequence, error) {
	key := CacheKey(text, maxLength, numSequences)

	if cached, err := g.cache.Get(ctx, key); err == nil && cached != "" {
		var seqs []generator.Sequence
		if err := json.Unmarshal([]byte(cached), &seqs); err == nil && len(seqs) > 0 {
			zlog.Debug("cache hit", zap.String("cache_key", key))
			g.metrics.ObserveGeneration(metrics.OutcomeCached, 0)
			return seqs, nil
		}
		zlog.Warn("cache entry corrupt, regenerating", zap.String("cache_key", key))
	}

	seqs, err := g.next.Generate(ctx, text, maxLength, numSequences)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(seqs)
	if err != nil {
		zlog.Warn("cache encode failed", zap.Error(err), zap.String("cache_key", key))
		return seqs, nil
	}
	if err := g.cache.Set(ctx, key, string(payload), g.ttl); err != nil {
		zlog.Warn("cache set failed", zap.Error(err), zap.String("cache_key", key))
	}
	return seqs, nil
}

// CacheKey 相同的输入、长度和序列数得到相同的 key
func CacheKey(text string, maxLength int, numSequences int) string {
	hash := md5.Sum([]byte(fmt.Sprintf("%s|%d|%d", text, maxLength, numSequences)))
	return keyPrefix + hex.EncodeToString(hash[:])
}

var _ generator.Generator = (*CachedGenerator)(nil)
