package main

import (
	"context"
	"fmt"

	"propman/internal/services"
	"propman/pkg/config"
	"propman/pkg/logger"
)

// seedAdmin 用户表为空且配置了 ADMIN_PASSWORD 时创建初始管理员
func seedAdmin(ctx context.Context, cfg *config.Config, users *services.UserService) error {
	appLogger := logger.GetLogger()

	if cfg.Admin.Password == "" {
		appLogger.Debug("ADMIN_PASSWORD not set, skipping bootstrap admin")
		return nil
	}

	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		appLogger.Info("Users already exist, skipping bootstrap admin")
		return nil
	}

	if _, err := users.Register(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	appLogger.Infof("Bootstrap admin %q created", cfg.Admin.Username)
	return nil
}
