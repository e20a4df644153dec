package services

import (
	"fmt"

	"propman/internal/models"
	"propman/internal/repository"
)

// requiresActiveRecheck 更新时仅在换物业或转入 ACTIVE 时重新检查
func requiresActiveRecheck(existing, candidate *models.Lease) bool {
	if candidate.PropertyID != existing.PropertyID {
		return true
	}
	return candidate.IsActive() && !existing.IsActive()
}

// activeLeaseAllowed 候选租约只允许与自身冲突
func activeLeaseAllowed(active []*models.Lease, candidateID uint) bool {
	switch len(active) {
	case 0:
		return true
	case 1:
		return candidateID != 0 && active[0].ID == candidateID
	default:
		return false
	}
}

// checkActiveLease 同一物业最多一条 ACTIVE 租约；非 ACTIVE 候选直接通过
func checkActiveLease(leases *repository.LeaseRepository, candidate *models.Lease) error {
	if !candidate.IsActive() {
		return nil
	}

	active, err := leases.FindActiveByProperty(candidate.PropertyID)
	if err != nil {
		return fmt.Errorf("find active leases: %w", err)
	}
	if !activeLeaseAllowed(active, candidate.ID) {
		return ErrActiveLeaseExists
	}
	return nil
}
