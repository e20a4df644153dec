package services

import (
	"fmt"

	"propman/internal/repository"
)

// guardPropertyDeletion 只有 ACTIVE 租约阻止删除物业
func guardPropertyDeletion(leases *repository.LeaseRepository, propertyID uint) error {
	active, err := leases.FindActiveByProperty(propertyID)
	if err != nil {
		return fmt.Errorf("find active leases: %w", err)
	}
	if len(active) > 0 {
		return ErrPropertyHasActiveLease
	}
	return nil
}

// guardTenantDeletion 任意状态的租约都阻止删除租客
func guardTenantDeletion(leases *repository.LeaseRepository, tenantID uint) error {
	count, err := leases.CountByTenant(tenantID)
	if err != nil {
		return fmt.Errorf("count tenant leases: %w", err)
	}
	if count > 0 {
		return ErrTenantHasLeases
	}
	return nil
}
