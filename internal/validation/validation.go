// Package validation 实体字段校验。
//
// 每种实体对应一组按顺序执行的纯函数规则，返回全部违规字段；
// 服务层在任何写操作之前调用。
package validation

import (
	"strings"
	"time"

	"propman/internal/models"
	apperrors "propman/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MaxPasswordBytes bcrypt 可接受的最大密码字节数
const MaxPasswordBytes = 72

// Violations 字段错误列表，为空表示通过
type Violations []apperrors.FieldError

// Err 有违规时转换为 ValidationFailed 错误
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return apperrors.ValidationFailed(v)
}

// rule 单条规则，通过时返回 nil
type rule func() *apperrors.FieldError

func run(rules ...rule) Violations {
	var out Violations
	for _, r := range rules {
		if fe := r(); fe != nil {
			out = append(out, *fe)
		}
	}
	return out
}

func notBlank(field, value, message string) rule {
	return func() *apperrors.FieldError {
		if strings.TrimSpace(value) == "" {
			return &apperrors.FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func optionalEmail(field, value, message string) rule {
	return func() *apperrors.FieldError {
		if value == "" {
			return nil
		}
		if err := validate.Var(value, "email"); err != nil {
			return &apperrors.FieldError{Field: field, Message: message}
		}
		return nil
	}
}

// maxBytes 按字节计长度，空值交给 notBlank 处理
func maxBytes(field, value string, limit int, message string) rule {
	return func() *apperrors.FieldError {
		if len(value) > limit {
			return &apperrors.FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func positiveID(field string, value uint, message string) rule {
	return func() *apperrors.FieldError {
		if value == 0 {
			return &apperrors.FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func positiveInt(field string, value int, message string) rule {
	return func() *apperrors.FieldError {
		if value <= 0 {
			return &apperrors.FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func optionalPositiveInt(field string, value *int, message string) rule {
	return func() *apperrors.FieldError {
		if value != nil && *value <= 0 {
			return &apperrors.FieldError{Field: field, Message: message}
		}
		return nil
	}
}

// Property 物业：名称、地址、面积必填
func Property(p *models.Property) Violations {
	return run(
		notBlank("name", p.Name, "Name is required"),
		notBlank("address", p.Address, "Address is required"),
		notBlank("area", p.Area, "Area is required"),
	)
}

// Tenant 租客：姓名必填，邮箱填写时须合法
func Tenant(t *models.Tenant) Violations {
	return run(
		notBlank("full_name", t.FullName, "Full name is required"),
		optionalEmail("email", t.Email, "Please provide a valid email address"),
	)
}

// Lease 租约字段校验，不涉及“单一生效租约”规则
func Lease(l *models.Lease) Violations {
	return run(
		positiveID("property_id", l.PropertyID, "Property is required"),
		positiveID("tenant_id", l.TenantID, "Tenant is required"),
		positiveInt("rent", l.Rent, "Rent must be greater than 0"),
		func() *apperrors.FieldError {
			if time.Time(l.StartDate).IsZero() {
				return &apperrors.FieldError{Field: "start_date", Message: "Start date is required"}
			}
			return nil
		},
		func() *apperrors.FieldError {
			switch {
			case strings.TrimSpace(l.Status) == "":
				return &apperrors.FieldError{Field: "status", Message: "Status is required"}
			case !models.IsValidLeaseStatus(l.Status):
				return &apperrors.FieldError{Field: "status", Message: "Status must be one of ACTIVE, NOTICE, ENDED"}
			}
			return nil
		},
		optionalPositiveInt("deposit", l.Deposit, "Deposit must be greater than 0"),
	)
}

// Registration 用户注册：用户名与密码必填，邮箱填写时须合法
func Registration(username, password, email string) Violations {
	return run(
		notBlank("username", username, "Username is required"),
		notBlank("password", password, "Password is required"),
		maxBytes("password", password, MaxPasswordBytes, "Password must be at most 72 bytes"),
		optionalEmail("email", email, "Please provide a valid email address"),
	)
}
