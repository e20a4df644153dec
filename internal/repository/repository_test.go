package repository

import (
	"errors"
	"testing"
	"time"

	"propman/internal/models"
	"propman/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB) (*models.Property, *models.Tenant) {
	t.Helper()
	p := &models.Property{Name: "Sakura House", Address: "1-2-3 Shibuya", Area: "40㎡"}
	require.NoError(t, NewPropertyRepository(db).Insert(p))
	tn := &models.Tenant{FullName: "Taro Yamada"}
	require.NoError(t, NewTenantRepository(db).Insert(tn))
	return p, tn
}

func insertLease(t *testing.T, repo *LeaseRepository, propertyID, tenantID uint, status string, start time.Time) *models.Lease {
	t.Helper()
	l := &models.Lease{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Rent:       80000,
		StartDate:  datatypes.Date(start),
		Status:     status,
	}
	require.NoError(t, repo.Insert(l))
	return l
}

func TestLeaseRepositoryQueries(t *testing.T) {
	db := testutil.NewTestDB(t)
	p, tn := seed(t, db)
	repo := NewLeaseRepository(db)

	older := insertLease(t, repo, p.ID, tn.ID, models.LeaseStatusEnded, time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC))
	newer := insertLease(t, repo, p.ID, tn.ID, models.LeaseStatusActive, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	active, err := repo.FindActiveByProperty(p.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, newer.ID, active[0].ID)

	byProperty, err := repo.FindByProperty(p.ID)
	require.NoError(t, err)
	require.Len(t, byProperty, 2)
	assert.Equal(t, newer.ID, byProperty[0].ID, "newest first")
	assert.Equal(t, older.ID, byProperty[1].ID)
	assert.Equal(t, "Taro Yamada", byProperty[0].Tenant.FullName)

	byTenant, err := repo.FindByTenant(tn.ID)
	require.NoError(t, err)
	require.Len(t, byTenant, 2)
	assert.Equal(t, "Sakura House", byTenant[0].Property.Name)

	count, err := repo.CountByTenant(tn.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	found, err := repo.FindByID(older.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.Property.ID)

	_, err = repo.FindByID(999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestLeaseRepositoryWrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	p, tn := seed(t, db)
	repo := NewLeaseRepository(db)

	l := insertLease(t, repo, p.ID, tn.ID, models.LeaseStatusNotice, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	l.Rent = 82000
	require.NoError(t, repo.Update(l))

	found, err := repo.FindByID(l.ID)
	require.NoError(t, err)
	assert.Equal(t, 82000, found.Rent)

	insertLease(t, repo, p.ID, tn.ID, models.LeaseStatusEnded, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))
	n, err := repo.DeleteByProperty(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	l = insertLease(t, repo, p.ID, tn.ID, models.LeaseStatusActive, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Delete(l.ID))
	count, err := repo.CountByTenant(tn.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLeaseRepositoryInsertIgnoresAssociations(t *testing.T) {
	db := testutil.NewTestDB(t)
	p, tn := seed(t, db)

	l := &models.Lease{
		PropertyID: p.ID,
		TenantID:   tn.ID,
		Rent:       80000,
		StartDate:  datatypes.Date(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		Status:     models.LeaseStatusActive,
		Property:   &models.Property{Name: "changed"},
	}
	require.NoError(t, NewLeaseRepository(db).Insert(l))

	stored, err := NewPropertyRepository(db).FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sakura House", stored.Name)

	_, total, err := NewPropertyRepository(db).FindPage("", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestPropertyAndTenantRepositories(t *testing.T) {
	db := testutil.NewTestDB(t)
	p, tn := seed(t, db)

	properties := NewPropertyRepository(db)
	ok, err := properties.Exists(p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	p.Plan = "2LDK"
	require.NoError(t, properties.Update(p))
	items, total, err := properties.FindPage("Shibuya", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "2LDK", items[0].Plan)

	require.NoError(t, properties.Delete(p.ID))
	ok, err = properties.Exists(p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	tenants := NewTenantRepository(db)
	tn.Email = "taro@example.com"
	require.NoError(t, tenants.Update(tn))
	found, _, err := tenants.FindPage("taro@", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, total, err = tenants.FindPage("", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, tenants.Delete(tn.ID))
	_, err = tenants.FindByID(tn.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTenantDeleteRestrictedByLeases(t *testing.T) {
	db := testutil.NewTestDB(t)
	p, tn := seed(t, db)
	insertLease(t, NewLeaseRepository(db), p.ID, tn.ID, models.LeaseStatusEnded, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Error(t, NewTenantRepository(db).Delete(tn.ID))
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewUserRepository(db)

	u := &models.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, users.Insert(u))

	exists, err := users.ExistsByUsername("alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByUsername("bob")
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := users.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.FindByID(u.ID)
	require.NoError(t, err)

	count, err := users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = users.Insert(&models.User{Username: "alice", PasswordHash: "x"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
