package handlers

import (
	"strconv"

	"propman/pkg/response"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径中的 :id，失败时已写入400响应
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
