package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propman/internal/database"
	"propman/internal/router"
	"propman/internal/services"
	"propman/pkg/config"
	"propman/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "propman",
		Short:        "Property, tenant and lease management service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate the database and start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Run database migrations and seed the bootstrap admin, then exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := bootstrap()
				if err != nil {
					return err
				}
				defer shutdown()
				return seedAdmin(context.Background(), cfg, services.NewUserService(database.GetDB()))
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap 加载配置、初始化日志与数据库并执行迁移
func bootstrap() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if err := database.Initialize(cfg); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := database.Migrate(database.GetDB()); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return cfg, nil
}

func shutdown() {
	appLogger := logger.GetLogger()
	if err := database.Close(); err != nil {
		appLogger.Error("Failed to close database:", err)
	}
	if err := database.CloseSessionStore(); err != nil {
		appLogger.Error("Failed to close Redis:", err)
	}
}

func runServe() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer shutdown()

	appLogger := logger.GetLogger()
	appLogger.Info("Starting propman...")

	db := database.GetDB()
	if err := seedAdmin(context.Background(), cfg, services.NewUserService(db)); err != nil {
		return err
	}

	gin.SetMode(cfg.Server.Mode)

	// 租约到期扫描，失败不影响主服务
	if cfg.Lease.ExpirySchedule != "" {
		expiry := services.NewLeaseExpiryScheduler(services.NewLeaseService(db), cfg.Lease.ExpirySchedule)
		if err := expiry.Start(); err != nil {
			appLogger.Errorf("Failed to start lease expiry scheduler: %v", err)
		} else {
			defer expiry.Stop()
		}
	}

	store := database.GetSessionStore(cfg)
	r := router.SetupRouter(cfg, db, store)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
	}

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
	return nil
}
