package models

import (
	"time"
)

// BaseModel 各实体共用的主键与时间戳；更新时由服务层保留原 CreatedAt
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
