package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 登录用户
type User struct {
	BaseModel
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	Email        string `json:"email" gorm:"size:100"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// SetPassword 设置密码，只保存bcrypt哈希
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
