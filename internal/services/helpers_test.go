package services

import (
	"context"
	"testing"
	"time"

	"propman/internal/models"
	"propman/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

type fixture struct {
	t       *testing.T
	ctx     context.Context
	db      *gorm.DB
	leases  *LeaseService
	props   *PropertyService
	tenants *TenantService
	users   *UserService
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	return &fixture{
		t:       t,
		ctx:     context.Background(),
		db:      db,
		leases:  NewLeaseService(db),
		props:   NewPropertyService(db),
		tenants: NewTenantService(db),
		users:   NewUserService(db),
	}
}

func (f *fixture) property(name string) *models.Property {
	p := &models.Property{Name: name, Address: "1-2-3 Shibuya, Tokyo", Area: "42.5㎡", Plan: "1LDK"}
	require.NoError(f.t, f.props.Create(f.ctx, p))
	return p
}

func (f *fixture) tenant(name string) *models.Tenant {
	tn := &models.Tenant{FullName: name, Email: "tenant@example.com"}
	require.NoError(f.t, f.tenants.Create(f.ctx, tn))
	return tn
}

func newLease(propertyID, tenantID uint, status string) *models.Lease {
	return &models.Lease{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Rent:       85000,
		StartDate:  day(2024, time.April, 1),
		Status:     status,
	}
}

func (f *fixture) lease(propertyID, tenantID uint, status string) *models.Lease {
	l := newLease(propertyID, tenantID, status)
	require.NoError(f.t, f.leases.Create(f.ctx, l))
	return l
}

func (f *fixture) countLeases() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&models.Lease{}).Count(&n).Error)
	return n
}

// reload 读取数据库中的当前状态，去掉关联以便作为更新候选
func (f *fixture) reload(id uint) *models.Lease {
	l, err := f.leases.GetByID(f.ctx, id)
	require.NoError(f.t, err)
	l.Property = nil
	l.Tenant = nil
	return l
}
