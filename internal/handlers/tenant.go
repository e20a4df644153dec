package handlers

import (
	"propman/internal/models"
	"propman/internal/services"
	"propman/pkg/pagination"
	"propman/pkg/response"

	"github.com/gin-gonic/gin"
)

// TenantRequest 新建与更新共用，更新为整体覆盖
type TenantRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (r *TenantRequest) toModel() *models.Tenant {
	return &models.Tenant{
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

// TenantDetail 租客详情及其租约
type TenantDetail struct {
	*models.Tenant
	Leases []*models.Lease `json:"leases"`
}

type TenantHandler struct {
	service      *services.TenantService
	leaseService *services.LeaseService
}

func NewTenantHandler(service *services.TenantService, leaseService *services.LeaseService) *TenantHandler {
	return &TenantHandler{
		service:      service,
		leaseService: leaseService,
	}
}

// List 租客列表
func (h *TenantHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	tenants, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, tenants, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 租客详情
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tenant, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	leases, err := h.leaseService.ListByTenant(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, TenantDetail{Tenant: tenant, Leases: leases})
}

// Create 创建租客
func (h *TenantHandler) Create(c *gin.Context) {
	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tenant := req.toModel()
	if err := h.service.Create(c.Request.Context(), tenant); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "tenant created", tenant)
}

// Update 更新租客
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tenant := req.toModel()
	tenant.ID = id
	if err := h.service.Update(c.Request.Context(), tenant); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "tenant updated", tenant)
}

// Delete 删除租客
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "tenant deleted", nil)
}

// Leases 租客的租约
func (h *TenantHandler) Leases(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	leases, err := h.leaseService.ListByTenant(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, leases)
}
