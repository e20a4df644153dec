package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"propman/internal/models"
	"propman/internal/repository"
	"propman/internal/validation"
	"propman/pkg/logger"

	"gorm.io/gorm"
)

// Principal 已认证的用户身份，显式传递给需要它的操作
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// UserService 用户注册与认证
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register 注册用户，只保存密码哈希
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validation.Registration(username, password, email).Err(); err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Email: email}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		taken, err := users.ExistsByUsername(username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return ErrUsernameTaken
		}

		if err := user.SetPassword(password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := users.Insert(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.GetLogger().WithField("username", username).Info("User registered")
	return user, nil
}

// Authenticate 校验用户名与密码
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	user, err := repository.NewUserRepository(s.db.WithContext(ctx)).FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &Principal{UserID: user.ID, Username: user.Username}, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := repository.NewUserRepository(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// Count 用户总数
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return repository.NewUserRepository(s.db.WithContext(ctx)).Count()
}
