package handlers

import (
	"propman/internal/models"
	"propman/internal/services"
	"propman/pkg/pagination"
	"propman/pkg/response"

	"github.com/gin-gonic/gin"
)

// PropertyRequest 新建与更新共用，更新为整体覆盖
type PropertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Area    string `json:"area"`
	Plan    string `json:"plan"`
}

func (r *PropertyRequest) toModel() *models.Property {
	return &models.Property{
		Name:    r.Name,
		Address: r.Address,
		Area:    r.Area,
		Plan:    r.Plan,
	}
}

// PropertyDetail 物业详情及其租约
type PropertyDetail struct {
	*models.Property
	Leases []*models.Lease `json:"leases"`
}

type PropertyHandler struct {
	service      *services.PropertyService
	leaseService *services.LeaseService
}

func NewPropertyHandler(service *services.PropertyService, leaseService *services.LeaseService) *PropertyHandler {
	return &PropertyHandler{
		service:      service,
		leaseService: leaseService,
	}
}

// List 物业列表
func (h *PropertyHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	properties, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, properties, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 物业详情
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	leases, err := h.leaseService.ListByProperty(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, PropertyDetail{Property: property, Leases: leases})
}

// Create 创建物业
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	property := req.toModel()
	if err := h.service.Create(c.Request.Context(), property); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "property created", property)
}

// Update 更新物业
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	property := req.toModel()
	property.ID = id
	if err := h.service.Update(c.Request.Context(), property); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "property updated", property)
}

// Delete 删除物业
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "property deleted", nil)
}

// Leases 物业的租约
func (h *PropertyHandler) Leases(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	leases, err := h.leaseService.ListByProperty(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, leases)
}

// ActiveLease 物业是否存在生效租约
func (h *PropertyHandler) ActiveLease(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	has, err := h.leaseService.HasActiveLeases(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"property_id":      id,
		"has_active_lease": has,
	})
}
