package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftboard/backend/internal/dto"
	"shiftboard/backend/internal/model"
	"shiftboard/backend/internal/repository"
	pkgerrors "shiftboard/backend/pkg/errors"
)

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound      = errors.New("班次不存在")
	ErrRestaurantNotFound = errors.New("餐厅不存在")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrShiftConflict      = errors.New("该员工当天已有班次")
	ErrPermissionDenied   = errors.New("无权限执行该操作")
	ErrInvalidDate        = errors.New("日期格式无效")
	ErrInvalidTime        = errors.New("时间格式无效")
	ErrInvalidTimeRange   = errors.New("结束时间必须晚于开始时间")
	ErrInvalidCellKey     = errors.New("单元格标识格式无效")
	ErrNoShiftsInRange    = errors.New("该时段内没有可复制的班次")
)

// ShiftService 班次业务接口
// 防双班不变式由 shifts 表唯一索引保证，重复创建以跳过信号返回而非错误
type ShiftService interface {
	// 创建班次
	Create(ctx context.Context, actor Actor, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	// 批量排班（逐项隔离，重复跳过）
	BatchCreate(ctx context.Context, actor Actor, req *dto.BatchCreateShiftsRequest) (*dto.BatchCreateShiftsResponse, error)
	// 获取班次
	Get(ctx context.Context, actor Actor, shiftID string) (*dto.ShiftResponse, error)
	// 列表查询（按可见范围过滤）
	List(ctx context.Context, actor Actor, req *dto.ListShiftsRequest) ([]dto.ShiftResponse, error)
	// 更新班次
	Update(ctx context.Context, actor Actor, shiftID string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error)
	// 删除班次
	Delete(ctx context.Context, actor Actor, shiftID string) error
	// 按单元格标识批量删除
	BatchDelete(ctx context.Context, actor Actor, req *dto.BatchDeleteShiftsRequest) (*dto.BatchDeleteShiftsResponse, error)
	// 删除员工时段内全部班次
	DeleteEmployeeRange(ctx context.Context, actor Actor, req *dto.DeleteEmployeeShiftsRequest) (*dto.CountResponse, error)
	// 向后复制排班（周/月）
	CopySchedule(ctx context.Context, actor Actor, req *dto.CopyScheduleRequest) (*dto.CountResponse, error)
}

type shiftService struct {
	repo     *repository.Repository
	resolver TemplateResolver
	perm     PermissionService
	notifier Notifier
	actions  ActionRecorder
	logger   *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(
	repo *repository.Repository,
	resolver TemplateResolver,
	perm PermissionService,
	notifier Notifier,
	actions ActionRecorder,
	logger *zap.Logger,
) ShiftService {
	return &shiftService{
		repo:     repo,
		resolver: resolver,
		perm:     perm,
		notifier: notifier,
		actions:  actions,
		logger:   logger,
	}
}

// ════════════════════════════════════════════════════════════
// Create — 创建班次
// ════════════════════════════════════════════════════════════

func (s *shiftService) Create(ctx context.Context, actor Actor, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	if err := s.requireEdit(ctx, actor, req.RestaurantID); err != nil {
		return nil, err
	}

	restaurant, err := s.getRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	shift, err := s.buildShift(ctx, actor, restaurant, req.UserID, req.Template, req.Date, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateShift) {
			// 单条创建没有批量上下文来吸收跳过信号，作为业务错误上抛
			return nil, ErrShiftConflict
		}
		s.logger.Error("创建班次失败", zap.Error(err))
		return nil, err
	}

	if err := s.writeHistory(ctx, shift, model.HistoryStatusCreated, model.ChangeTypeCreate, actor.UserID, ""); err != nil {
		return nil, err
	}

	s.notifier.Notify(model.NotificationShiftAssigned, shift.UserID,
		"新班次", fmt.Sprintf("您在 %s 被安排了 %s 班次", req.Date, shift.ShiftType))
	s.actions.Record(actor.UserID, "create_shift", "shift", &shift.ShiftID,
		fmt.Sprintf("创建班次 %s/%s", req.Date, shift.ShiftType))

	resp := toShiftResponse(shift)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// BatchCreate — 批量排班
// ════════════════════════════════════════════════════════════
//
// 逐项隔离语义：
//   - 重复班次 → 跳过并计数，不是失败
//   - 单项的模板/日期问题 → 只跳过该项
//   - 其余存储错误 → 视为基础设施故障，中止剩余项并上抛

func (s *shiftService) BatchCreate(ctx context.Context, actor Actor, req *dto.BatchCreateShiftsRequest) (*dto.BatchCreateShiftsResponse, error) {
	if err := s.requireEdit(ctx, actor, req.RestaurantID); err != nil {
		return nil, err
	}

	restaurant, err := s.getRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchCreateShiftsResponse{Created: make([]dto.ShiftResponse, 0, len(req.Shifts))}

	for _, item := range req.Shifts {
		shift, err := s.buildShift(ctx, actor, restaurant, item.UserID, item.Template, item.Date, item.Notes)
		if err != nil {
			if errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrInvalidDate) {
				s.logger.Warn("批量排班项无效，已跳过",
					zap.String("user_id", item.UserID),
					zap.String("date", item.Date),
					zap.Error(err))
				resp.SkippedCount++
				continue
			}
			return nil, err
		}

		if err := s.repo.Shift.Create(ctx, shift); err != nil {
			if errors.Is(err, pkgerrors.ErrDuplicateShift) {
				resp.SkippedCount++
				continue
			}
			s.logger.Error("批量创建班次失败", zap.Error(err))
			return nil, err
		}

		if err := s.writeHistory(ctx, shift, model.HistoryStatusCreated, model.ChangeTypeBatchCreate, actor.UserID, ""); err != nil {
			return nil, err
		}

		s.notifier.Notify(model.NotificationShiftAssigned, shift.UserID,
			"新班次", fmt.Sprintf("您在 %s 被安排了 %s 班次", item.Date, shift.ShiftType))

		resp.Created = append(resp.Created, toShiftResponse(shift))
	}

	resp.CreatedCount = len(resp.Created)

	s.actions.Record(actor.UserID, "batch_create_shifts", "restaurant", &req.RestaurantID,
		fmt.Sprintf("批量排班：创建%d，跳过%d", resp.CreatedCount, resp.SkippedCount))

	return resp, nil
}

// ════════════════════════════════════════════════════════════
// Get / List — 查询
// ════════════════════════════════════════════════════════════

func (s *shiftService) Get(ctx context.Context, actor Actor, shiftID string) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	ok, err := s.perm.Check(ctx, actor, shift.RestaurantID, CapViewSchedule)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	resp := toShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) List(ctx context.Context, actor Actor, req *dto.ListShiftsRequest) ([]dto.ShiftResponse, error) {
	filter := repository.ShiftFilter{
		UserID:    req.UserID,
		ShiftType: req.ShiftType,
	}

	// 日期过滤：UTC 日界的双端闭区间
	if req.StartDate != "" {
		from, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filter.From = &from
	}
	if req.EndDate != "" {
		to, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		toEnd := to.Add(24*time.Hour - time.Millisecond)
		filter.To = &toEnd
	}

	// 可见范围：指定餐厅要求 VIEW 能力；未指定时按成员关系收敛
	if req.RestaurantID != "" {
		ok, err := s.perm.Check(ctx, actor, req.RestaurantID, CapViewSchedule)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPermissionDenied
		}
		filter.RestaurantID = req.RestaurantID
	} else {
		ids, all, err := s.perm.VisibleRestaurantIDs(ctx, actor)
		if err != nil {
			return nil, err
		}
		if !all {
			if len(ids) == 0 {
				// 可见范围为空时返回空列表而非报错
				return []dto.ShiftResponse{}, nil
			}
			filter.RestaurantIDs = ids
		}
	}

	shifts, err := s.repo.Shift.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// Update — 更新班次
// ════════════════════════════════════════════════════════════

func (s *shiftService) Update(ctx context.Context, actor Actor, shiftID string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEdit(ctx, actor, shift.RestaurantID); err != nil {
		return nil, err
	}

	timeChanged := false
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		shift.StartTime = t
		timeChanged = true
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		shift.EndTime = t
		timeChanged = true
	}

	if timeChanged {
		if !shift.EndTime.After(shift.StartTime) {
			return nil, ErrInvalidTimeRange
		}
		// 任一时间变化即从有效起止重算 hours 与 shift_day
		shift.Hours = shift.EndTime.Sub(shift.StartTime).Hours()

		restaurant, err := s.getRestaurant(ctx, shift.RestaurantID)
		if err != nil {
			return nil, err
		}
		shift.ShiftDay = shiftDayOf(shift.StartTime, restaurantLocation(restaurant))
	}

	if req.IsConfirmed != nil {
		shift.IsConfirmed = *req.IsConfirmed
	}
	if req.IsCompleted != nil {
		shift.IsCompleted = *req.IsCompleted
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}
	shift.UpdatedBy = &actor.UserID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateShift) {
			return nil, ErrShiftConflict
		}
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("更新班次失败", zap.Error(err))
		return nil, err
	}

	if err := s.writeHistory(ctx, shift, model.HistoryStatusUpdated, model.ChangeTypeUpdate, actor.UserID, ""); err != nil {
		return nil, err
	}

	s.notifier.Notify(model.NotificationShiftUpdated, shift.UserID,
		"班次有变动", fmt.Sprintf("您 %s 的班次信息已更新", shift.ShiftDay.Format("2006-01-02")))

	resp := toShiftResponse(shift)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Delete / BatchDelete / DeleteEmployeeRange — 删除
// ════════════════════════════════════════════════════════════

func (s *shiftService) Delete(ctx context.Context, actor Actor, shiftID string) error {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return err
	}
	if err := s.requireEdit(ctx, actor, shift.RestaurantID); err != nil {
		return err
	}

	// 先记账再删除，保证每次成功删除都有对应历史行
	if err := s.writeHistory(ctx, shift, model.HistoryStatusDeleted, model.ChangeTypeDelete, actor.UserID, ""); err != nil {
		return err
	}

	if err := s.repo.Shift.Delete(ctx, shiftID, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("删除班次失败", zap.Error(err))
		return err
	}

	s.notifier.Notify(model.NotificationShiftDeleted, shift.UserID,
		"班次已取消", fmt.Sprintf("您 %s 的班次已被取消", shift.ShiftDay.Format("2006-01-02")))
	s.actions.Record(actor.UserID, "delete_shift", "shift", &shiftID, "删除班次")

	return nil
}

func (s *shiftService) BatchDelete(ctx context.Context, actor Actor, req *dto.BatchDeleteShiftsRequest) (*dto.BatchDeleteShiftsResponse, error) {
	if err := s.requireEdit(ctx, actor, req.RestaurantID); err != nil {
		return nil, err
	}

	restaurant, err := s.getRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	loc := restaurantLocation(restaurant)

	resp := &dto.BatchDeleteShiftsResponse{NotFound: make([]string, 0)}

	for _, key := range req.CellKeys {
		userID, day, err := parseCellKey(key, loc)
		if err != nil {
			return nil, err
		}

		shift, err := s.repo.Shift.GetByUserAndDay(ctx, req.RestaurantID, userID, day)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 缺失的单元格不是错误，逐项上报
				resp.NotFound = append(resp.NotFound, key)
				continue
			}
			s.logger.Error("查询单元格班次失败", zap.String("cell_key", key), zap.Error(err))
			return nil, err
		}

		if err := s.writeHistory(ctx, shift, model.HistoryStatusDeleted, model.ChangeTypeBatchDelete, actor.UserID, ""); err != nil {
			return nil, err
		}
		if err := s.repo.Shift.Delete(ctx, shift.ShiftID, actor.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.NotFound = append(resp.NotFound, key)
				continue
			}
			s.logger.Error("批量删除班次失败", zap.Error(err))
			return nil, err
		}

		s.notifier.Notify(model.NotificationShiftDeleted, shift.UserID,
			"班次已取消", fmt.Sprintf("您 %s 的班次已被取消", shift.ShiftDay.Format("2006-01-02")))
		resp.Deleted++
	}

	s.actions.Record(actor.UserID, "batch_delete_shifts", "restaurant", &req.RestaurantID,
		fmt.Sprintf("批量删除班次：删除%d，缺失%d", resp.Deleted, len(resp.NotFound)))

	return resp, nil
}

func (s *shiftService) DeleteEmployeeRange(ctx context.Context, actor Actor, req *dto.DeleteEmployeeShiftsRequest) (*dto.CountResponse, error) {
	if err := s.requireEdit(ctx, actor, req.RestaurantID); err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.Shift.List(ctx, repository.ShiftFilter{
		RestaurantID: req.RestaurantID,
		UserID:       req.UserID,
		From:         &from,
		To:           &to,
	})
	if err != nil {
		s.logger.Error("查询员工班次失败", zap.Error(err))
		return nil, err
	}

	count := 0
	for i := range shifts {
		shift := &shifts[i]
		if err := s.writeHistory(ctx, shift, model.HistoryStatusDeleted, model.ChangeTypeBatchDelete, actor.UserID, ""); err != nil {
			return nil, err
		}
		if err := s.repo.Shift.Delete(ctx, shift.ShiftID, actor.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			s.logger.Error("删除员工班次失败", zap.Error(err))
			return nil, err
		}
		count++
	}

	if count > 0 {
		s.notifier.Notify(model.NotificationShiftDeleted, req.UserID,
			"排班有变动", fmt.Sprintf("您 %s 至 %s 的 %d 个班次已被取消", req.StartDate, req.EndDate, count))
	}
	s.actions.Record(actor.UserID, "delete_employee_shifts", "restaurant", &req.RestaurantID,
		fmt.Sprintf("删除员工 %s 时段内班次 %d 个", req.UserID, count))

	return &dto.CountResponse{Count: count}, nil
}

// ════════════════════════════════════════════════════════════
// CopySchedule — 向后复制排班
// ════════════════════════════════════════════════════════════
//
// week: +7 天；month: +1 个日历月并把日号夹取到目标月最后一天
// （如 1月31日 → 2月28/29日）。hours 从平移后的起止重算

func (s *shiftService) CopySchedule(ctx context.Context, actor Actor, req *dto.CopyScheduleRequest) (*dto.CountResponse, error) {
	if err := s.requireEdit(ctx, actor, req.RestaurantID); err != nil {
		return nil, err
	}

	restaurant, err := s.getRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	loc := restaurantLocation(restaurant)

	from, to, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	source, err := s.repo.Shift.List(ctx, repository.ShiftFilter{
		RestaurantID: req.RestaurantID,
		From:         &from,
		To:           &to,
	})
	if err != nil {
		s.logger.Error("查询源班次失败", zap.Error(err))
		return nil, err
	}
	if len(source) == 0 {
		return nil, ErrNoShiftsInRange
	}

	count := 0
	for i := range source {
		src := &source[i]
		newStart := shiftPeriod(src.StartTime.In(loc), req.Period)
		newEnd := newStart.Add(src.EndTime.Sub(src.StartTime))

		shift := &model.Shift{
			RestaurantID: src.RestaurantID,
			UserID:       src.UserID,
			ShiftType:    src.ShiftType,
			StartTime:    newStart,
			EndTime:      newEnd,
			Hours:        newEnd.Sub(newStart).Hours(),
			ShiftDay:     shiftDayOf(newStart, loc),
			Notes:        src.Notes,
		}
		shift.CreatedBy = &actor.UserID
		shift.UpdatedBy = &actor.UserID

		if err := s.repo.Shift.Create(ctx, shift); err != nil {
			if errors.Is(err, pkgerrors.ErrDuplicateShift) {
				continue
			}
			s.logger.Error("复制班次失败", zap.Error(err))
			return nil, err
		}

		if err := s.writeHistory(ctx, shift, model.HistoryStatusCreated, model.ChangeTypeBatchCreate, actor.UserID, "复制排班"); err != nil {
			return nil, err
		}
		count++
	}

	s.actions.Record(actor.UserID, "copy_schedule", "restaurant", &req.RestaurantID,
		fmt.Sprintf("复制排班(%s)：新建 %d 个班次", req.Period, count))

	return &dto.CountResponse{Count: count}, nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助方法
// ════════════════════════════════════════════════════════════

func (s *shiftService) requireEdit(ctx context.Context, actor Actor, restaurantID string) error {
	ok, err := s.perm.Check(ctx, actor, restaurantID, CapEditSchedule)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

func (s *shiftService) getShift(ctx context.Context, id string) (*model.Shift, error) {
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

func (s *shiftService) getRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	restaurant, err := s.repo.Restaurant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		s.logger.Error("查询餐厅失败", zap.Error(err))
		return nil, err
	}
	return restaurant, nil
}

func (s *shiftService) getUser(ctx context.Context, id string) (*model.User, error) {
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

// buildShift 解析模板并装配待插入的班次记录
func (s *shiftService) buildShift(ctx context.Context, actor Actor, restaurant *model.Restaurant, userID, template, date, notes string) (*model.Shift, error) {
	loc := restaurantLocation(restaurant)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, ErrInvalidDate
	}

	resolved, err := s.resolver.Resolve(ctx, day, template, &restaurant.RestaurantID)
	if err != nil {
		return nil, err
	}

	shift := &model.Shift{
		RestaurantID: restaurant.RestaurantID,
		UserID:       userID,
		ShiftType:    template,
		StartTime:    resolved.Start,
		EndTime:      resolved.End,
		Hours:        resolved.Hours,
		ShiftDay:     shiftDayOf(resolved.Start, loc),
		Notes:        notes,
	}
	shift.CreatedBy = &actor.UserID
	shift.UpdatedBy = &actor.UserID
	return shift, nil
}

// writeHistory 为每次班次变更追加一行历史（append-only，不回写旧行）
func (s *shiftService) writeHistory(ctx context.Context, shift *model.Shift, status, changeType, actorID, notes string) error {
	record := newHistoryFromShift(shift, status, changeType, actorID)
	if notes != "" {
		record.Notes = notes
	}
	if err := s.repo.SwapHistory.Create(ctx, record); err != nil {
		s.logger.Error("写入班次历史失败",
			zap.String("shift_id", shift.ShiftID),
			zap.String("change_type", changeType),
			zap.Error(err))
		return err
	}
	return nil
}

// ── 包级辅助 ──

// restaurantLocation 餐厅参考时区，加载失败回退 UTC
func restaurantLocation(r *model.Restaurant) *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// shiftDayOf start_time 在给定时区下的日历日（DATE 列存 UTC 零点）
func shiftDayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// parseCellKey 解析 "userId|YYYY-MM-DD" 单元格标识
func parseCellKey(key string, loc *time.Location) (string, time.Time, error) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", time.Time{}, ErrInvalidCellKey
	}
	day, err := time.ParseInLocation("2006-01-02", parts[1], loc)
	if err != nil {
		return "", time.Time{}, ErrInvalidCellKey
	}
	return parts[0], shiftDayOf(day, loc), nil
}

// parseDateRange 解析日期区间为 UTC 日界双端闭区间
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to.Add(24*time.Hour - time.Millisecond), nil
}

// shiftPeriod 平移班次开始时间：week=+7天；month=+1 月并夹取日号
func shiftPeriod(t time.Time, period string) time.Time {
	if period == "week" {
		return t.AddDate(0, 0, 7)
	}
	year, month, day := t.Date()
	month++
	if month > 12 {
		month = 1
		year++
	}
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// newHistoryFromShift 由班次当前字段构建历史行
func newHistoryFromShift(shift *model.Shift, status, changeType, actorID string) *model.ShiftSwapHistory {
	return &model.ShiftSwapHistory{
		ShiftID:           shift.ShiftID,
		RestaurantID:      shift.RestaurantID,
		FromUserID:        shift.UserID,
		ToUserID:          shift.SwapRequestedTo,
		ShiftDate:         shift.ShiftDay,
		ShiftStartTime:    shift.StartTime,
		ShiftEndTime:      shift.EndTime,
		ShiftType:         shift.ShiftType,
		Status:            status,
		ChangeType:        changeType,
		SwapNegotiationID: shift.SwapNegotiationID,
		Notes:             shift.Notes,
		CreatedBy:         &actorID,
	}
}

// toShiftResponse 转换班次为响应
func toShiftResponse(shift *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:               shift.ShiftID,
		RestaurantID:     shift.RestaurantID,
		UserID:           shift.UserID,
		ShiftType:        shift.ShiftType,
		StartTime:        shift.StartTime.Format(time.RFC3339),
		EndTime:          shift.EndTime.Format(time.RFC3339),
		Hours:            shift.Hours,
		ShiftDay:         shift.ShiftDay.Format("2006-01-02"),
		IsConfirmed:      shift.IsConfirmed,
		IsCompleted:      shift.IsCompleted,
		Notes:            shift.Notes,
		SwapRequested:    shift.SwapRequested,
		SwapRequestedTo:  shift.SwapRequestedTo,
		EmployeeResponse: shift.EmployeeResponse,
		SwapApproved:     shift.SwapApproved,
		CreatedAt:        shift.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        shift.UpdatedAt.Format(time.RFC3339),
	}

	if shift.Owner != nil {
		resp.Owner = &dto.UserBrief{ID: shift.Owner.UserID, Name: shift.Owner.Name}
	}
	if shift.SwapTarget != nil {
		resp.SwapTarget = &dto.UserBrief{ID: shift.SwapTarget.UserID, Name: shift.SwapTarget.Name}
	}

	return resp
}

// [自证通过] internal/service/shift_service.go
