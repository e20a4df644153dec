package response

import (
	"net/http"

	"propman/pkg/errors"
	"propman/pkg/logger"
	"propman/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// Response 统一返回格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationData 校验失败时的 data 字段
type ValidationData struct {
	Errors []errors.FieldError `json:"errors"`
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 成功返回（自定义消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessWithPage 分页成功返回
func SuccessWithPage(c *gin.Context, data interface{}, pageInfo *pagination.PageInfo) {
	c.JSON(http.StatusOK, gin.H{
		"code":      errors.CodeSuccess,
		"message":   "success",
		"data":      data,
		"page_info": pageInfo,
	})
}

// Error 通用错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// FromError 按错误类型返回，非业务错误一律记日志并返回500
func FromError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		logger.GetLogger().WithError(err).
			WithField("path", c.FullPath()).
			Error("request failed")
		ServerError(c, "internal server error")
		return
	}

	if appErr.Code == errors.CodeValidationFailed {
		ValidationFailed(c, appErr.Fields)
		return
	}
	if appErr.Code >= errors.CodeServerError {
		logger.GetLogger().WithError(err).
			WithField("path", c.FullPath()).
			Error("request failed")
	}
	Error(c, appErr.Code, appErr.Message)
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, errors.CodeInvalidParam, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, errors.CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, errors.CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, errors.CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, errors.CodeConflict, message)
}

// ValidationFailed 字段校验失败，data 中带字段错误列表
func ValidationFailed(c *gin.Context, fields []errors.FieldError) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeValidationFailed,
		Message: "validation failed",
		Data:    ValidationData{Errors: fields},
	})
}

func ServerError(c *gin.Context, message string) {
	Error(c, errors.CodeServerError, message)
}
