package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store 令牌吊销存储，按令牌ID（jti）记录，过期后自动失效
type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// 过期条目的后台清理间隔
const memoryCleanupInterval = 10 * time.Minute

// MemoryStore 单实例部署使用的进程内存实现
type MemoryStore struct {
	revoked *cache.Cache
}

// NewMemoryStore 创建内存吊销存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: cache.New(cache.NoExpiration, memoryCleanupInterval),
	}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.revoked.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := s.revoked.Get(tokenID)
	return found, nil
}
