package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConnected 未配置 Redis
var ErrNotConnected = errors.New("redis not connected")

// Store 对 go-redis 客户端的薄封装
type Store struct {
	client redis.UniversalClient
}

// NewStore 包装已建立的客户端，client 为 nil 时所有操作返回 ErrNotConnected
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Options 连接参数
type Options struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// Dial 建立连接并 Ping
func Dial(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewStore(client), nil
}

// IsConnected 检查 Redis 是否已连接
func (s *Store) IsConnected() bool {
	return s != nil && s.client != nil
}

// Close 关闭 Redis 连接
func (s *Store) Close() error {
	if !s.IsConnected() {
		return nil
	}
	return s.client.Close()
}

// Get 获取字符串值
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if !s.IsConnected() {
		return "", ErrNotConnected
	}
	return s.client.Get(ctx, key).Result()
}

// Set 设置字符串值
func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !s.IsConnected() {
		return ErrNotConnected
	}
	return s.client.Set(ctx, key, value, expiration).Err()
}
