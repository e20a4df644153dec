package handlers

import (
	"context"
	"time"

	"propman/pkg/logger"
	"propman/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler 系统状态
type SystemHandler struct {
	db *gorm.DB
}

func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health 存活检查，包含数据库连通性
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.GetLogger().Warnf("Health check: database unreachable: %v", err)
		dbStatus = "unavailable"
	}

	response.Success(c, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
