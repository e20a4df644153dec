package repository

import (
	"time"

	"propman/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaseRepository 租约数据访问
type LeaseRepository struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// FindByID 连同物业与租客一起加载；不存在时返回 gorm.ErrRecordNotFound
func (r *LeaseRepository) FindByID(id uint) (*models.Lease, error) {
	var lease models.Lease
	err := r.db.Preload("Property").Preload("Tenant").First(&lease, id).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// FindActiveByProperty 物业下状态为 ACTIVE 的租约
func (r *LeaseRepository) FindActiveByProperty(propertyID uint) ([]*models.Lease, error) {
	var leases []*models.Lease
	err := r.db.Where("property_id = ? AND status = ?", propertyID, models.LeaseStatusActive).
		Order("id").
		Find(&leases).Error
	return leases, err
}

// FindByProperty 物业的全部租约，按开始日期倒序
func (r *LeaseRepository) FindByProperty(propertyID uint) ([]*models.Lease, error) {
	var leases []*models.Lease
	err := r.db.Preload("Tenant").
		Where("property_id = ?", propertyID).
		Order("start_date DESC, id DESC").
		Find(&leases).Error
	return leases, err
}

// FindByTenant 租客的全部租约，按开始日期倒序
func (r *LeaseRepository) FindByTenant(tenantID uint) ([]*models.Lease, error) {
	var leases []*models.Lease
	err := r.db.Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC, id DESC").
		Find(&leases).Error
	return leases, err
}

// CountByTenant 租客名下任意状态的租约数量
func (r *LeaseRepository) CountByTenant(tenantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lease{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *LeaseRepository) Insert(lease *models.Lease) error {
	return r.db.Omit(clause.Associations).Create(lease).Error
}

// Update 整行覆盖
func (r *LeaseRepository) Update(lease *models.Lease) error {
	return r.db.Omit(clause.Associations).Save(lease).Error
}

func (r *LeaseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Lease{}, id).Error
}

// DeleteByProperty 删除物业下的全部租约
func (r *LeaseRepository) DeleteByProperty(propertyID uint) (int64, error) {
	result := r.db.Where("property_id = ?", propertyID).Delete(&models.Lease{})
	return result.RowsAffected, result.Error
}

// EndExpired 将结束日期早于 before 且仍为 ACTIVE/NOTICE 的租约置为 ENDED
func (r *LeaseRepository) EndExpired(before time.Time) (int64, error) {
	result := r.db.Model(&models.Lease{}).
		Where("end_date IS NOT NULL AND end_date < ?", before).
		Where("status IN ?", []string{models.LeaseStatusActive, models.LeaseStatusNotice}).
		Updates(map[string]interface{}{
			"status":     models.LeaseStatusEnded,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
