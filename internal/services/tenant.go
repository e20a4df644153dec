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

	"gorm.io/gorm"
)

// TenantService 租客服务
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// List 分页查询租客
func (s *TenantService) List(ctx context.Context, params *pagination.PageParams) ([]*models.Tenant, int64, error) {
	return repository.NewTenantRepository(s.db.WithContext(ctx)).
		FindPage(params.Keyword, params.GetOffset(), params.GetLimit())
}

// GetByID 根据ID获取租客
func (s *TenantService) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := repository.NewTenantRepository(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrTenantNotFound, "find tenant")
	}
	return tenant, nil
}

// Create 创建租客
func (s *TenantService) Create(ctx context.Context, tenant *models.Tenant) error {
	if err := validation.Tenant(tenant).Err(); err != nil {
		return err
	}
	tenant.ID = 0

	if err := repository.NewTenantRepository(s.db.WithContext(ctx)).Insert(tenant); err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	logger.GetLogger().WithField("tenant_id", tenant.ID).Info("Tenant created")
	return nil
}

// Update 整体覆盖已有租客
func (s *TenantService) Update(ctx context.Context, tenant *models.Tenant) error {
	if err := validation.Tenant(tenant).Err(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenants := repository.NewTenantRepository(tx)
		existing, err := tenants.FindByID(tenant.ID)
		if err != nil {
			return notFoundOr(err, ErrTenantNotFound, "find tenant")
		}

		tenant.CreatedAt = existing.CreatedAt
		if err := tenants.Update(tenant); err != nil {
			return fmt.Errorf("update tenant: %w", err)
		}
		return nil
	})
}

// Delete 删除租客；存在任意租约时拒绝
func (s *TenantService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenants := repository.NewTenantRepository(tx)

		exists, err := tenants.Exists(id)
		if err != nil {
			return fmt.Errorf("check tenant: %w", err)
		}
		if !exists {
			return ErrTenantNotFound
		}

		if err := guardTenantDeletion(repository.NewLeaseRepository(tx), id); err != nil {
			return err
		}

		if err := tenants.Delete(id); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrTenantHasLeases
			}
			return fmt.Errorf("delete tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTenantHasLeases) {
			metrics.ObserveDeletionRefused("tenant")
			logger.GetLogger().WithField("tenant_id", id).Info("Tenant deletion refused: leases exist")
		}
		return err
	}

	logger.GetLogger().WithField("tenant_id", id).Info("Tenant deleted")
	return nil
}
