package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
// Template 可以是模板 UUID、模板名称或兼容的历史班次代码（FULL/MORNING/EVENING/PARTIAL）
type CreateShiftRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required,uuid"`
	UserID       string `json:"user_id"       binding:"required,uuid"`
	Template     string `json:"template"      binding:"required,min=1,max=50"`
	Date         string `json:"date"          binding:"required,datetime=2006-01-02"`
	Notes        string `json:"notes"         binding:"omitempty,max=500"`
}

// BatchShiftItem 批量排班单项
type BatchShiftItem struct {
	UserID   string `json:"user_id"  binding:"required,uuid"`
	Template string `json:"template" binding:"required,min=1,max=50"`
	Date     string `json:"date"     binding:"required,datetime=2006-01-02"`
	Notes    string `json:"notes"    binding:"omitempty,max=500"`
}

// BatchCreateShiftsRequest 批量排班请求
type BatchCreateShiftsRequest struct {
	RestaurantID string           `json:"restaurant_id" binding:"required,uuid"`
	Shifts       []BatchShiftItem `json:"shifts"        binding:"required,min=1,dive"`
}

// BatchCreateShiftsResponse 批量排班响应
// 重复班次不是失败：逐项跳过并计数
type BatchCreateShiftsResponse struct {
	Created      []ShiftResponse `json:"created"`
	CreatedCount int             `json:"created_count"`
	SkippedCount int             `json:"skipped_count"`
}

// ListShiftsRequest 班次列表查询参数
// 日期过滤展开为 UTC 日界的双端闭区间
type ListShiftsRequest struct {
	RestaurantID string `form:"restaurant_id" binding:"omitempty,uuid"`
	UserID       string `form:"user_id"       binding:"omitempty,uuid"`
	ShiftType    string `form:"shift_type"    binding:"omitempty,max=50"`
	StartDate    string `form:"start_date"    binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date"      binding:"omitempty,datetime=2006-01-02"`
}

// UpdateShiftRequest 更新班次请求
// 时间字段 RFC3339；任一时间变化会重算 hours 与 shift_day
type UpdateShiftRequest struct {
	StartTime   *string `json:"start_time"   binding:"omitempty"`
	EndTime     *string `json:"end_time"     binding:"omitempty"`
	IsConfirmed *bool   `json:"is_confirmed" binding:"omitempty"`
	IsCompleted *bool   `json:"is_completed" binding:"omitempty"`
	Notes       *string `json:"notes"        binding:"omitempty,max=500"`
}

// BatchDeleteShiftsRequest 批量删除请求
// CellKeys 形如 "userId|YYYY-MM-DD"
type BatchDeleteShiftsRequest struct {
	RestaurantID string   `json:"restaurant_id" binding:"required,uuid"`
	CellKeys     []string `json:"cell_keys"     binding:"required,min=1"`
}

// BatchDeleteShiftsResponse 批量删除响应
type BatchDeleteShiftsResponse struct {
	Deleted  int      `json:"deleted"`
	NotFound []string `json:"not_found"`
}

// DeleteEmployeeShiftsRequest 删除员工时段内全部班次请求
type DeleteEmployeeShiftsRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required,uuid"`
	UserID       string `json:"user_id"       binding:"required,uuid"`
	StartDate    string `json:"start_date"    binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date"      binding:"required,datetime=2006-01-02"`
}

// CopyScheduleRequest 复制排班请求
type CopyScheduleRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required,uuid"`
	StartDate    string `json:"start_date"    binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date"      binding:"required,datetime=2006-01-02"`
	Period       string `json:"period"        binding:"required,oneof=week month"`
}

// ── 响应 ──

// UserBrief 用户摘要
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID               string     `json:"id"`
	RestaurantID     string     `json:"restaurant_id"`
	UserID           string     `json:"user_id"`
	Owner            *UserBrief `json:"owner,omitempty"`
	ShiftType        string     `json:"shift_type"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	Hours            float64    `json:"hours"`
	ShiftDay         string     `json:"shift_day"`
	IsConfirmed      bool       `json:"is_confirmed"`
	IsCompleted      bool       `json:"is_completed"`
	Notes            string     `json:"notes,omitempty"`
	SwapRequested    bool       `json:"swap_requested"`
	SwapRequestedTo  *string    `json:"swap_requested_to,omitempty"`
	SwapTarget       *UserBrief `json:"swap_target,omitempty"`
	EmployeeResponse *string    `json:"employee_response,omitempty"`
	SwapApproved     *bool      `json:"swap_approved,omitempty"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
}

// [自证通过] internal/dto/shift.go
