package model

import "time"

// 通知类型
const (
	NotificationShiftAssigned = "shift_assigned"
	NotificationShiftUpdated  = "shift_updated"
	NotificationShiftDeleted  = "shift_deleted"
	NotificationSwapRequested = "swap_requested"
	NotificationSwapResponded = "swap_responded"
	NotificationSwapResolved  = "swap_resolved"
)

// Notification 站内通知表 — 对应 notifications
// 投递为 fire-and-forget：写入失败只记日志，绝不阻塞业务变更
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Kind           string    `gorm:"type:varchar(50);not null"                      json:"kind"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Body           string    `gorm:"type:varchar(1000)"                             json:"body,omitempty"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"is_read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
