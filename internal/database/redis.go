package database

import (
	"context"
	"sync"
	"time"

	"propman/pkg/config"
	"propman/pkg/logger"
	"propman/pkg/session"
)

var (
	sessionStore     session.Store
	redisStore       *session.RedisStore
	sessionStoreOnce sync.Once
)

// GetSessionStore 获取令牌吊销存储的单例；未启用Redis或连接失败时退回内存实现
func GetSessionStore(cfg *config.Config) session.Store {
	sessionStoreOnce.Do(func() {
		if !cfg.Redis.Enabled {
			sessionStore = session.NewMemoryStore()
			return
		}

		store := session.NewRedisStore(&session.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.GetLogger().Warnf("Redis unavailable, falling back to in-memory session store: %v", err)
			_ = store.Close()
			sessionStore = session.NewMemoryStore()
			return
		}

		redisStore = store
		sessionStore = store
	})
	return sessionStore
}

// CloseSessionStore 关闭Redis连接
func CloseSessionStore() error {
	if redisStore != nil {
		return redisStore.Close()
	}
	return nil
}
