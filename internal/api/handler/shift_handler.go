package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftboard/backend/internal/dto"
	"shiftboard/backend/internal/service"
	pkgerrors "shiftboard/backend/pkg/errors"
	"shiftboard/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Create 创建班次
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, shift)
}

// BatchCreate 批量排班
// POST /api/v1/shifts/batch
func (h *ShiftHandler) BatchCreate(c *gin.Context) {
	var req dto.BatchCreateShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.BatchCreate(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, result)
}

// List 查询班次列表
// GET /api/v1/shifts
func (h *ShiftHandler) List(c *gin.Context) {
	var req dto.ListShiftsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shifts, err := h.shiftSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, gin.H{"list": shifts})
}

// Get 获取单个班次
// GET /api/v1/shifts/:id
func (h *ShiftHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "班次ID不能为空")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// Update 更新班次
// PUT /api/v1/shifts/:id
func (h *ShiftHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "班次ID不能为空")
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// Delete 删除班次
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "班次ID不能为空")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// BatchDelete 按单元格标识批量删除
// POST /api/v1/shifts/batch-delete
func (h *ShiftHandler) BatchDelete(c *gin.Context) {
	var req dto.BatchDeleteShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.BatchDelete(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteEmployeeRange 删除员工时段内全部班次
// POST /api/v1/shifts/delete-range
func (h *ShiftHandler) DeleteEmployeeRange(c *gin.Context) {
	var req dto.DeleteEmployeeShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.DeleteEmployeeRange(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// CopySchedule 向后复制排班
// POST /api/v1/shifts/copy
func (h *ShiftHandler) CopySchedule(c *gin.Context) {
	var req dto.CopyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.CopySchedule(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// handleShiftError 统一处理班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14101, "班次不存在")
	case errors.Is(err, service.ErrRestaurantNotFound):
		response.NotFound(c, 14102, "餐厅不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 14103, "用户不存在")
	case errors.Is(err, service.ErrShiftConflict):
		response.Conflict(c, 14104, "该员工当天已有班次")
	case errors.Is(err, service.ErrTemplateNotFound):
		response.BadRequest(c, 14105, "班次模板不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14106, "日期格式无效")
	case errors.Is(err, service.ErrInvalidTime):
		response.BadRequest(c, 14107, "时间格式无效")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 14108, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrInvalidCellKey):
		response.BadRequest(c, 14109, "单元格标识格式无效")
	case errors.Is(err, service.ErrNoShiftsInRange):
		response.BadRequest(c, 14110, "该时段内没有可复制的班次")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "无权限执行该操作")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14111, "班次已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_handler.go
