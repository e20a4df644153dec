package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// RedisStore 多实例部署共享的吊销存储
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建Redis吊销存储
func NewRedisStore(config *Config) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	return NewRedisStoreWithClient(client, config.Prefix)
}

// NewRedisStoreWithClient 使用已有客户端创建
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "propman:session"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping 测试Redis连接
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) revokedKey(tokenID string) string {
	return fmt.Sprintf("%s:revoked:%s", s.prefix, tokenID)
}
