package models

// Property 物业
type Property struct {
	BaseModel
	Name    string `json:"name" gorm:"not null;size:100;index"`
	Address string `json:"address" gorm:"not null;size:255"`
	Area    string `json:"area" gorm:"not null;size:50"` // 面积描述，如 "42.5㎡"
	Plan    string `json:"plan" gorm:"size:20"`          // 户型，如 "2LDK"
}

// TableName 表名
func (p *Property) TableName() string {
	return "properties"
}
