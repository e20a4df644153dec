package database

import (
	"fmt"

	"propman/internal/models"
	"propman/pkg/logger"

	"gorm.io/gorm"
)

// 同一物业最多一条 ACTIVE 租约；服务层检查之外的数据库兜底，防止并发请求同时通过检查
const activeLeaseIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_leases_active_property ON leases (property_id) WHERE status = 'ACTIVE'`

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.Lease{},
	)
	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	if err := db.Exec(activeLeaseIndexSQL).Error; err != nil {
		appLogger.Errorf("Creating active lease index failed: %v", err)
		return fmt.Errorf("create active lease index: %w", err)
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
