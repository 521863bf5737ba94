package dto

// ── 历史/通知模块 DTO ──

// SwapHistoryListRequest 餐厅维度变更历史查询参数
type SwapHistoryListRequest struct {
	RestaurantID string `form:"restaurant_id" binding:"required,uuid"`
	ChangeType   string `form:"change_type"   binding:"omitempty,oneof=CREATE UPDATE DELETE SWAP BATCH_CREATE BATCH_DELETE"`
	StartDate    string `form:"start_date"    binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date"      binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// SwapHistoryResponse 变更历史行响应
type SwapHistoryResponse struct {
	ID                string  `json:"id"`
	ShiftID           string  `json:"shift_id"`
	RestaurantID      string  `json:"restaurant_id"`
	FromUserID        string  `json:"from_user_id"`
	ToUserID          *string `json:"to_user_id,omitempty"`
	ShiftDate         string  `json:"shift_date"`
	ShiftStartTime    string  `json:"shift_start_time"`
	ShiftEndTime      string  `json:"shift_end_time"`
	ShiftType         string  `json:"shift_type"`
	Status            string  `json:"status"`
	ChangeType        string  `json:"change_type"`
	SwapNegotiationID *string `json:"swap_negotiation_id,omitempty"`
	ApprovedBy        *string `json:"approved_by,omitempty"`
	ApprovedAt        *string `json:"approved_at,omitempty"`
	RequestedAt       *string `json:"requested_at,omitempty"`
	Notes             string  `json:"notes,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// NotificationResponse 站内通知响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/history.go
