package services

import (
	"errors"
	"fmt"

	apperrors "propman/pkg/errors"

	"gorm.io/gorm"
)

var (
	ErrActiveLeaseExists      = apperrors.Conflict("property already has an active lease")
	ErrPropertyHasActiveLease = apperrors.Conflict("property has an active lease and cannot be deleted")
	ErrTenantHasLeases        = apperrors.Conflict("tenant has leases and cannot be deleted")
	ErrUsernameTaken          = apperrors.Conflict("username already in use")

	ErrLeaseNotFound    = apperrors.NotFound("lease not found")
	ErrPropertyNotFound = apperrors.NotFound("property not found")
	ErrTenantNotFound   = apperrors.NotFound("tenant not found")
	ErrUserNotFound     = apperrors.NotFound("user not found")

	ErrInvalidCredentials = &apperrors.AppError{Code: apperrors.CodeUnauthorized, Message: "invalid username or password"}
)

// notFoundOr 记录不存在时返回 sentinel，其余错误附带操作描述返回
func notFoundOr(err error, sentinel error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}
