package services

import (
	"errors"
	"strings"
	"testing"

	"propman/internal/models"
	apperrors "propman/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterTwice(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Register(f.ctx, "alice", "s3cret", "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = f.users.Register(f.ctx, "alice", "other", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsernameTaken))
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "username already in use", err.Error())

	var stored models.User
	require.NoError(t, f.db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))

	count, err := f.users.Count(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Register(f.ctx, " ", "", "nope")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Len(t, appErr.Fields, 3)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Register(f.ctx, "bob", strings.Repeat("x", 80), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "password", appErr.Fields[0].Field)

	count, err := f.users.Count(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	user, err := f.users.Register(f.ctx, "alice", "s3cret", "")
	require.NoError(t, err)

	principal, err := f.users.Authenticate(f.ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, &Principal{UserID: user.ID, Username: "alice"}, principal)

	_, err = f.users.Authenticate(f.ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = f.users.Authenticate(f.ctx, "bob", "s3cret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	got, err := f.users.GetByID(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = f.users.GetByID(f.ctx, 999)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
