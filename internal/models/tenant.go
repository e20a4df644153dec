package models

// Tenant 租客，phone 与 email 可为空
type Tenant struct {
	BaseModel
	FullName string `json:"full_name" gorm:"not null;size:100;index"`
	Phone    string `json:"phone" gorm:"size:20"`
	Email    string `json:"email" gorm:"size:100"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}
