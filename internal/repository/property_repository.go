package repository

import (
	"fmt"

	"propman/internal/models"

	"gorm.io/gorm"
)

// PropertyRepository 物业数据访问
type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// FindPage 分页查询，keyword 匹配名称或地址
func (r *PropertyRepository) FindPage(keyword string, offset, limit int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	var total int64

	query := r.db.Model(&models.Property{})
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR address LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Offset(offset).Limit(limit).Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// FindByID 不存在时返回 gorm.ErrRecordNotFound
func (r *PropertyRepository) FindByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PropertyRepository) Insert(property *models.Property) error {
	return r.db.Create(property).Error
}

// Update 整行覆盖
func (r *PropertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

func (r *PropertyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Property{}, id).Error
}
