package repository

import (
	"fmt"

	"propman/internal/models"

	"gorm.io/gorm"
)

// TenantRepository 租客数据访问
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// FindPage 分页查询，keyword 匹配姓名、邮箱或电话
func (r *TenantRepository) FindPage(keyword string, offset, limit int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := r.db.Model(&models.Tenant{})
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("full_name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Offset(offset).Limit(limit).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// FindByID 不存在时返回 gorm.ErrRecordNotFound
func (r *TenantRepository) FindByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *TenantRepository) Insert(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// Update 整行覆盖
func (r *TenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

func (r *TenantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tenant{}, id).Error
}
