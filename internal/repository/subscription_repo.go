package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// SubscriptionFilter narrows subscription listings. Nil fields are ignored.
type SubscriptionFilter struct {
	UserID       *uint
	EntrepriseID *uint
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	FindByID(ctx context.Context, id uint) (*model.Subscription, error)
	List(ctx context.Context, filter SubscriptionFilter, page, limit int) ([]model.Subscription, int64, error)
	Update(ctx context.Context, sub *model.Subscription) error
	Delete(ctx context.Context, id uint) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return GetDB(ctx, r.db).Create(sub).Error
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id uint) (*model.Subscription, error) {
	var sub model.Subscription
	if err := GetDB(ctx, r.db).Preload("User").First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) List(ctx context.Context, filter SubscriptionFilter, page, limit int) ([]model.Subscription, int64, error) {
	var subs []model.Subscription
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Subscription{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.EntrepriseID != nil {
		db = db.Where("entreprise_id = ?", *filter.EntrepriseID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Order("start_date").Offset(offset).Limit(limit).Find(&subs).Error; err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *model.Subscription) error {
	return GetDB(ctx, r.db).Save(sub).Error
}

func (r *subscriptionRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Subscription{}).Error
}
