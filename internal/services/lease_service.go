package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propman/internal/metrics"
	"propman/internal/models"
	"propman/internal/repository"
	"propman/internal/validation"
	"propman/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LeaseService 租约服务，负责单一生效租约规则
type LeaseService struct {
	db *gorm.DB
}

func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{db: db}
}

// Create 创建租约
func (s *LeaseService) Create(ctx context.Context, lease *models.Lease) error {
	if err := validation.Lease(lease).Err(); err != nil {
		return err
	}
	lease.ID = 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureLeaseReferences(tx, lease); err != nil {
			return err
		}

		leases := repository.NewLeaseRepository(tx)
		if err := checkActiveLease(leases, lease); err != nil {
			return err
		}
		if err := leases.Insert(lease); err != nil {
			return translateLeaseWrite(err, "insert lease")
		}
		return nil
	})
	if err != nil {
		s.logConflict("create", lease, err)
		return err
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"lease_id":    lease.ID,
		"property_id": lease.PropertyID,
		"tenant_id":   lease.TenantID,
		"status":      lease.Status,
	}).Info("Lease created")
	return nil
}

// Update 整体覆盖已有租约，lease.ID 必须指向已有记录
func (s *LeaseService) Update(ctx context.Context, lease *models.Lease) error {
	if err := validation.Lease(lease).Err(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leases := repository.NewLeaseRepository(tx)

		existing, err := leases.FindByID(lease.ID)
		if err != nil {
			return notFoundOr(err, ErrLeaseNotFound, "find lease")
		}
		if err := ensureLeaseReferences(tx, lease); err != nil {
			return err
		}

		if requiresActiveRecheck(existing, lease) {
			if err := checkActiveLease(leases, lease); err != nil {
				return err
			}
		}

		lease.CreatedAt = existing.CreatedAt
		lease.Property = nil
		lease.Tenant = nil
		if err := leases.Update(lease); err != nil {
			return translateLeaseWrite(err, "update lease")
		}
		return nil
	})
	if err != nil {
		s.logConflict("update", lease, err)
		return err
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"lease_id":    lease.ID,
		"property_id": lease.PropertyID,
		"status":      lease.Status,
	}).Info("Lease updated")
	return nil
}

// Delete 删除租约，租约本身不受删除保护
func (s *LeaseService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leases := repository.NewLeaseRepository(tx)
		if _, err := leases.FindByID(id); err != nil {
			return notFoundOr(err, ErrLeaseNotFound, "find lease")
		}
		if err := leases.Delete(id); err != nil {
			return fmt.Errorf("delete lease: %w", err)
		}
		logger.GetLogger().WithField("lease_id", id).Info("Lease deleted")
		return nil
	})
}

// GetByID 获取租约，包含物业与租客
func (s *LeaseService) GetByID(ctx context.Context, id uint) (*models.Lease, error) {
	lease, err := repository.NewLeaseRepository(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrLeaseNotFound, "find lease")
	}
	return lease, nil
}

// ListByProperty 物业的租约列表
func (s *LeaseService) ListByProperty(ctx context.Context, propertyID uint) ([]*models.Lease, error) {
	db := s.db.WithContext(ctx)
	exists, err := repository.NewPropertyRepository(db).Exists(propertyID)
	if err != nil {
		return nil, fmt.Errorf("check property: %w", err)
	}
	if !exists {
		return nil, ErrPropertyNotFound
	}
	return repository.NewLeaseRepository(db).FindByProperty(propertyID)
}

// ListByTenant 租客的租约列表
func (s *LeaseService) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Lease, error) {
	db := s.db.WithContext(ctx)
	exists, err := repository.NewTenantRepository(db).Exists(tenantID)
	if err != nil {
		return nil, fmt.Errorf("check tenant: %w", err)
	}
	if !exists {
		return nil, ErrTenantNotFound
	}
	return repository.NewLeaseRepository(db).FindByTenant(tenantID)
}

// HasActiveLeases 物业是否存在 ACTIVE 租约
func (s *LeaseService) HasActiveLeases(ctx context.Context, propertyID uint) (bool, error) {
	active, err := repository.NewLeaseRepository(s.db.WithContext(ctx)).FindActiveByProperty(propertyID)
	if err != nil {
		return false, fmt.Errorf("find active leases: %w", err)
	}
	return len(active) > 0, nil
}

// EndExpired 将结束日期早于 asOf 当天的 ACTIVE/NOTICE 租约置为 ENDED
func (s *LeaseService) EndExpired(ctx context.Context, asOf time.Time) (int64, error) {
	y, m, d := asOf.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var ended int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := repository.NewLeaseRepository(tx).EndExpired(today)
		if err != nil {
			return fmt.Errorf("end expired leases: %w", err)
		}
		ended = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.ObserveLeasesExpired(ended)
	return ended, nil
}

func (s *LeaseService) logConflict(op string, lease *models.Lease, err error) {
	if !errors.Is(err, ErrActiveLeaseExists) {
		return
	}
	metrics.ObserveLeaseConflict(op)
	logger.GetLogger().WithFields(logrus.Fields{
		"operation":   op,
		"lease_id":    lease.ID,
		"property_id": lease.PropertyID,
	}).Info("Lease refused: property already has an active lease")
}

// ensureLeaseReferences 租约引用的物业与租客必须存在
func ensureLeaseReferences(tx *gorm.DB, lease *models.Lease) error {
	exists, err := repository.NewPropertyRepository(tx).Exists(lease.PropertyID)
	if err != nil {
		return fmt.Errorf("check property: %w", err)
	}
	if !exists {
		return ErrPropertyNotFound
	}

	exists, err = repository.NewTenantRepository(tx).Exists(lease.TenantID)
	if err != nil {
		return fmt.Errorf("check tenant: %w", err)
	}
	if !exists {
		return ErrTenantNotFound
	}
	return nil
}

// translateLeaseWrite 唯一索引冲突说明并发请求抢先写入了 ACTIVE 租约
func translateLeaseWrite(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrActiveLeaseExists
	}
	return fmt.Errorf("%s: %w", op, err)
}
