package services

import (
	"errors"
	"testing"
	"time"

	"propman/internal/models"
	apperrors "propman/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateLeaseWithoutActiveLease(t *testing.T) {
	f := newFixture(t)
	p := f.property("Sakura House")
	tn := f.tenant("Taro Yamada")

	l := f.lease(p.ID, tn.ID, models.LeaseStatusActive)
	assert.NotZero(t, l.ID)

	has, err := f.leases.HasActiveLeases(f.ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCreateActiveLeaseConflict(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")
	l1 := f.lease(p.ID, tn.ID, models.LeaseStatusActive)

	before := f.countLeases()
	l2 := newLease(p.ID, tn.ID, models.LeaseStatusActive)
	err := f.leases.Create(f.ctx, l2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrActiveLeaseExists))
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, before, f.countLeases())

	// 重复失败不改变状态
	err = f.leases.Create(f.ctx, newLease(p.ID, tn.ID, models.LeaseStatusActive))
	assert.True(t, errors.Is(err, ErrActiveLeaseExists))
	assert.Equal(t, before, f.countLeases())

	assert.Equal(t, models.LeaseStatusActive, f.reload(l1.ID).Status)
}

func TestCreateNonActiveLeaseSkipsCheck(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")
	f.lease(p.ID, tn.ID, models.LeaseStatusActive)

	f.lease(p.ID, tn.ID, models.LeaseStatusNotice)
	f.lease(p.ID, tn.ID, models.LeaseStatusEnded)
	assert.Equal(t, int64(3), f.countLeases())
}

func TestCreateLeaseValidationRunsFirst(t *testing.T) {
	f := newFixture(t)

	l := newLease(0, 0, "")
	l.Rent = 0
	err := f.leases.Create(f.ctx, l)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Len(t, appErr.Fields, 4)
	assert.Zero(t, f.countLeases())
}

func TestCreateLeaseMissingReferences(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")

	err := f.leases.Create(f.ctx, newLease(p.ID+100, tn.ID, models.LeaseStatusActive))
	assert.True(t, errors.Is(err, ErrPropertyNotFound))

	err = f.leases.Create(f.ctx, newLease(p.ID, tn.ID+100, models.LeaseStatusActive))
	assert.True(t, errors.Is(err, ErrTenantNotFound))
	assert.Zero(t, f.countLeases())
}

func TestActiveLeaseScenario(t *testing.T) {
	f := newFixture(t)
	p1 := f.property("P1")
	tn := f.tenant("T1")
	l1 := f.lease(p1.ID, tn.ID, models.LeaseStatusActive)

	l2 := newLease(p1.ID, tn.ID, models.LeaseStatusActive)
	err := f.leases.Create(f.ctx, l2)
	require.True(t, errors.Is(err, ErrActiveLeaseExists))
	assert.Equal(t, models.LeaseStatusActive, f.reload(l1.ID).Status)
	assert.Equal(t, int64(1), f.countLeases())

	ended := f.reload(l1.ID)
	ended.Status = models.LeaseStatusEnded
	require.NoError(t, f.leases.Update(f.ctx, ended))

	l2 = newLease(p1.ID, tn.ID, models.LeaseStatusActive)
	require.NoError(t, f.leases.Create(f.ctx, l2))
	assert.Equal(t, int64(2), f.countLeases())
}

func TestUpdateRentOnActiveLease(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")
	l := f.lease(p.ID, tn.ID, models.LeaseStatusActive)

	candidate := f.reload(l.ID)
	candidate.Rent = 90000
	end := day(2026, time.March, 31)
	candidate.EndDate = &end
	require.NoError(t, f.leases.Update(f.ctx, candidate))

	got := f.reload(l.ID)
	assert.Equal(t, 90000, got.Rent)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, time.Time(end).Format("2006-01-02"), time.Time(*got.EndDate).Format("2006-01-02"))
	assert.Equal(t, models.LeaseStatusActive, got.Status)
}

func TestUpdateNoticeToActive(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")

	notice := f.lease(p.ID, tn.ID, models.LeaseStatusNotice)
	candidate := f.reload(notice.ID)
	candidate.Status = models.LeaseStatusActive
	require.NoError(t, f.leases.Update(f.ctx, candidate))
	assert.Equal(t, models.LeaseStatusActive, f.reload(notice.ID).Status)

	other := f.lease(p.ID, tn.ID, models.LeaseStatusNotice)
	candidate = f.reload(other.ID)
	candidate.Status = models.LeaseStatusActive
	err := f.leases.Update(f.ctx, candidate)
	assert.True(t, errors.Is(err, ErrActiveLeaseExists))
	assert.Equal(t, models.LeaseStatusNotice, f.reload(other.ID).Status)
}

func TestUpdateMovesLeaseToAnotherProperty(t *testing.T) {
	f := newFixture(t)
	p1 := f.property("P1")
	p2 := f.property("P2")
	p3 := f.property("P3")
	tn := f.tenant("T1")

	moving := f.lease(p1.ID, tn.ID, models.LeaseStatusActive)
	f.lease(p2.ID, tn.ID, models.LeaseStatusActive)

	candidate := f.reload(moving.ID)
	candidate.PropertyID = p2.ID
	err := f.leases.Update(f.ctx, candidate)
	assert.True(t, errors.Is(err, ErrActiveLeaseExists))
	assert.Equal(t, p1.ID, f.reload(moving.ID).PropertyID)

	candidate = f.reload(moving.ID)
	candidate.PropertyID = p3.ID
	require.NoError(t, f.leases.Update(f.ctx, candidate))
	assert.Equal(t, p3.ID, f.reload(moving.ID).PropertyID)

	has, err := f.leases.HasActiveLeases(f.ctx, p1.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUpdateMissingLease(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")

	candidate := newLease(p.ID, tn.ID, models.LeaseStatusActive)
	candidate.ID = 999
	err := f.leases.Update(f.ctx, candidate)
	assert.True(t, errors.Is(err, ErrLeaseNotFound))
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, f.countLeases())
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")
	l := f.lease(p.ID, tn.ID, models.LeaseStatusActive)
	created := f.reload(l.ID).CreatedAt

	candidate := newLease(p.ID, tn.ID, models.LeaseStatusActive)
	candidate.ID = l.ID
	candidate.Rent = 70000
	require.NoError(t, f.leases.Update(f.ctx, candidate))

	assert.True(t, created.Equal(f.reload(l.ID).CreatedAt))
}

func TestDeleteLease(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")
	l := f.lease(p.ID, tn.ID, models.LeaseStatusActive)

	require.NoError(t, f.leases.Delete(f.ctx, l.ID))
	assert.Zero(t, f.countLeases())

	err := f.leases.Delete(f.ctx, l.ID)
	assert.True(t, errors.Is(err, ErrLeaseNotFound))
}

func TestListLeases(t *testing.T) {
	f := newFixture(t)
	p1 := f.property("P1")
	p2 := f.property("P2")
	t1 := f.tenant("T1")
	t2 := f.tenant("T2")

	f.lease(p1.ID, t1.ID, models.LeaseStatusEnded)
	f.lease(p1.ID, t2.ID, models.LeaseStatusActive)
	f.lease(p2.ID, t1.ID, models.LeaseStatusActive)

	byProperty, err := f.leases.ListByProperty(f.ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, byProperty, 2)
	for _, l := range byProperty {
		require.NotNil(t, l.Tenant)
	}

	byTenant, err := f.leases.ListByTenant(f.ctx, t1.ID)
	require.NoError(t, err)
	assert.Len(t, byTenant, 2)
	for _, l := range byTenant {
		require.NotNil(t, l.Property)
	}

	_, err = f.leases.ListByProperty(f.ctx, 999)
	assert.True(t, errors.Is(err, ErrPropertyNotFound))
	_, err = f.leases.ListByTenant(f.ctx, 999)
	assert.True(t, errors.Is(err, ErrTenantNotFound))

	l, err := f.leases.GetByID(f.ctx, byProperty[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, l.Property)
	assert.NotNil(t, l.Tenant)

	_, err = f.leases.GetByID(f.ctx, 999)
	assert.True(t, errors.Is(err, ErrLeaseNotFound))
}

func TestAtMostOneActiveLeasePerProperty(t *testing.T) {
	f := newFixture(t)
	p := f.property("P1")
	tn := f.tenant("T1")

	statuses := []string{
		models.LeaseStatusActive, models.LeaseStatusNotice, models.LeaseStatusActive,
		models.LeaseStatusEnded, models.LeaseStatusActive,
	}
	for _, status := range statuses {
		_ = f.leases.Create(f.ctx, newLease(p.ID, tn.ID, status))
	}

	leases, err := f.leases.ListByProperty(f.ctx, p.ID)
	require.NoError(t, err)
	for _, l := range leases {
		if l.Status != models.LeaseStatusActive {
			candidate := f.reload(l.ID)
			candidate.Status = models.LeaseStatusActive
			_ = f.leases.Update(f.ctx, candidate)
		}
	}

	var active int64
	require.NoError(t, f.db.Model(&models.Lease{}).
		Where("property_id = ? AND status = ?", p.ID, models.LeaseStatusActive).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestTranslateLeaseWrite(t *testing.T) {
	assert.Same(t, ErrActiveLeaseExists, translateLeaseWrite(gorm.ErrDuplicatedKey, "insert lease"))

	err := translateLeaseWrite(gorm.ErrInvalidData, "insert lease")
	assert.EqualError(t, err, "insert lease: "+gorm.ErrInvalidData.Error())
	assert.False(t, apperrors.IsConflict(err))
}

func TestEndExpired(t *testing.T) {
	f := newFixture(t)
	p1 := f.property("P1")
	p2 := f.property("P2")
	tn := f.tenant("T1")

	expired := newLease(p1.ID, tn.ID, models.LeaseStatusActive)
	end := day(2024, time.September, 30)
	expired.EndDate = &end
	require.NoError(t, f.leases.Create(f.ctx, expired))

	notice := newLease(p1.ID, tn.ID, models.LeaseStatusNotice)
	notice.EndDate = &end
	require.NoError(t, f.leases.Create(f.ctx, notice))

	current := newLease(p2.ID, tn.ID, models.LeaseStatusActive)
	lastDay := day(2024, time.October, 15)
	current.EndDate = &lastDay
	require.NoError(t, f.leases.Create(f.ctx, current))

	open := f.lease(p2.ID, tn.ID, models.LeaseStatusNotice)

	n, err := f.leases.EndExpired(f.ctx, time.Date(2024, time.October, 15, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, models.LeaseStatusEnded, f.reload(expired.ID).Status)
	assert.Equal(t, models.LeaseStatusEnded, f.reload(notice.ID).Status)
	assert.Equal(t, models.LeaseStatusActive, f.reload(current.ID).Status, "ends today, still in force")
	assert.Equal(t, models.LeaseStatusNotice, f.reload(open.ID).Status, "no end date")
}
