package errors

import (
	stderrors "errors"
	"fmt"
)

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam     = 400
	CodeUnauthorized     = 401
	CodeForbidden        = 403
	CodeNotFound         = 404
	CodeConflict         = 409
	CodeValidationFailed = 422
	CodeServerError      = 500
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError 业务错误，Code 与上面的错误码一致
type AppError struct {
	Code    int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Conflict 业务规则冲突
func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NotFound 引用的实体不存在
func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// ValidationFailed 字段校验失败
func ValidationFailed(fields []FieldError) *AppError {
	return &AppError{Code: CodeValidationFailed, Message: "validation failed", Fields: fields}
}

// As 取出错误链中的 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasCode(err error, code int) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsValidation(err error) bool {
	return hasCode(err, CodeValidationFailed)
}
