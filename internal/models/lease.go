package models

import (
	"gorm.io/datatypes"
)

// 租约状态
const (
	LeaseStatusActive = "ACTIVE"
	LeaseStatusNotice = "NOTICE"
	LeaseStatusEnded  = "ENDED"
)

// LeaseStatuses 全部租约状态，按表单展示顺序
var LeaseStatuses = []string{LeaseStatusActive, LeaseStatusNotice, LeaseStatusEnded}

// Lease 租约，连接一个物业与一个租客
// 同一物业同一时刻最多一条 ACTIVE 租约，数据库层由部分唯一索引兜底（见 database.Migrate）
type Lease struct {
	BaseModel
	PropertyID uint            `json:"property_id" gorm:"not null;index"`
	TenantID   uint            `json:"tenant_id" gorm:"not null;index"`
	Rent       int             `json:"rent" gorm:"not null"`
	StartDate  datatypes.Date  `json:"start_date" gorm:"not null"`
	EndDate    *datatypes.Date `json:"end_date"`
	Status     string          `json:"status" gorm:"not null;size:20;index"`
	Deposit    *int            `json:"deposit"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT"`
}

// TableName 表名
func (l *Lease) TableName() string {
	return "leases"
}

// IsActive 是否为生效中的租约
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// IsValidLeaseStatus 检查租约状态是否有效
func IsValidLeaseStatus(status string) bool {
	switch status {
	case LeaseStatusActive, LeaseStatusNotice, LeaseStatusEnded:
		return true
	default:
		return false
	}
}
