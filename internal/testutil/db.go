// Package testutil 测试辅助：基于内存 sqlite 的完整迁移数据库
package testutil

import (
	"testing"

	"propman/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB 返回已迁移的内存数据库，测试结束自动关闭
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 内存库每个连接都是独立的数据库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
