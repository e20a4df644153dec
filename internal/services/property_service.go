package services

import (
	"context"
	"errors"
	"fmt"

	"propman/internal/metrics"
	"propman/internal/models"
	"propman/internal/repository"
	"propman/internal/validation"
	"propman/pkg/logger"
	"propman/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PropertyService 物业服务
type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// List 分页查询物业
func (s *PropertyService) List(ctx context.Context, params *pagination.PageParams) ([]*models.Property, int64, error) {
	return repository.NewPropertyRepository(s.db.WithContext(ctx)).
		FindPage(params.Keyword, params.GetOffset(), params.GetLimit())
}

// GetByID 根据ID获取物业
func (s *PropertyService) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	property, err := repository.NewPropertyRepository(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrPropertyNotFound, "find property")
	}
	return property, nil
}

// Create 创建物业
func (s *PropertyService) Create(ctx context.Context, property *models.Property) error {
	if err := validation.Property(property).Err(); err != nil {
		return err
	}
	property.ID = 0

	if err := repository.NewPropertyRepository(s.db.WithContext(ctx)).Insert(property); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	logger.GetLogger().WithField("property_id", property.ID).Info("Property created")
	return nil
}

// Update 整体覆盖已有物业
func (s *PropertyService) Update(ctx context.Context, property *models.Property) error {
	if err := validation.Property(property).Err(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		properties := repository.NewPropertyRepository(tx)
		existing, err := properties.FindByID(property.ID)
		if err != nil {
			return notFoundOr(err, ErrPropertyNotFound, "find property")
		}

		property.CreatedAt = existing.CreatedAt
		if err := properties.Update(property); err != nil {
			return fmt.Errorf("update property: %w", err)
		}
		return nil
	})
}

// Delete 删除物业；存在 ACTIVE 租约时拒绝，其余历史租约一并删除
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	var removedLeases int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		properties := repository.NewPropertyRepository(tx)
		leases := repository.NewLeaseRepository(tx)

		exists, err := properties.Exists(id)
		if err != nil {
			return fmt.Errorf("check property: %w", err)
		}
		if !exists {
			return ErrPropertyNotFound
		}

		if err := guardPropertyDeletion(leases, id); err != nil {
			return err
		}

		if removedLeases, err = leases.DeleteByProperty(id); err != nil {
			return fmt.Errorf("delete property leases: %w", err)
		}
		if err := properties.Delete(id); err != nil {
			return fmt.Errorf("delete property: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPropertyHasActiveLease) {
			metrics.ObserveDeletionRefused("property")
			logger.GetLogger().WithField("property_id", id).Info("Property deletion refused: active lease exists")
		}
		return err
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"property_id":    id,
		"removed_leases": removedLeases,
	}).Info("Property deleted")
	return nil
}
