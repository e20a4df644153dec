package handlers

import (
	"strings"
	"time"

	"propman/internal/models"
	"propman/internal/services"
	apperrors "propman/pkg/errors"
	"propman/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// LeaseRequest 新建与更新共用，日期格式 YYYY-MM-DD
type LeaseRequest struct {
	PropertyID uint   `json:"property_id"`
	TenantID   uint   `json:"tenant_id"`
	Rent       *int   `json:"rent"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	Deposit    *int   `json:"deposit"`
}

// toModel 日期格式错误作为字段错误返回
func (r *LeaseRequest) toModel() (*models.Lease, error) {
	lease := &models.Lease{
		PropertyID: r.PropertyID,
		TenantID:   r.TenantID,
		Status:     strings.TrimSpace(r.Status),
		Deposit:    r.Deposit,
	}
	if r.Rent != nil {
		lease.Rent = *r.Rent
	}

	var fields []apperrors.FieldError
	if start, ok := parseDate(r.StartDate); ok {
		if start != nil {
			lease.StartDate = *start
		}
	} else {
		fields = append(fields, apperrors.FieldError{Field: "start_date", Message: "Start date must be in YYYY-MM-DD format"})
	}
	if end, ok := parseDate(r.EndDate); ok {
		lease.EndDate = end
	} else {
		fields = append(fields, apperrors.FieldError{Field: "end_date", Message: "End date must be in YYYY-MM-DD format"})
	}

	if len(fields) > 0 {
		return nil, apperrors.ValidationFailed(fields)
	}
	return lease, nil
}

// parseDate 空字符串返回 nil, true
func parseDate(value string) (*datatypes.Date, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, false
	}
	d := datatypes.Date(t)
	return &d, true
}

type LeaseHandler struct {
	service *services.LeaseService
}

func NewLeaseHandler(service *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{service: service}
}

// Statuses 租约状态选项
func (h *LeaseHandler) Statuses(c *gin.Context) {
	response.Success(c, models.LeaseStatuses)
}

// GetByID 租约详情
func (h *LeaseHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lease, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, lease)
}

// Create 创建租约
func (h *LeaseHandler) Create(c *gin.Context) {
	var req LeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	lease, err := req.toModel()
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), lease); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "lease created", lease)
}

// Update 更新租约
func (h *LeaseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req LeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	lease, err := req.toModel()
	if err != nil {
		response.FromError(c, err)
		return
	}
	lease.ID = id
	if err := h.service.Update(c.Request.Context(), lease); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "lease updated", lease)
}

// Delete 删除租约
func (h *LeaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "lease deleted", nil)
}
