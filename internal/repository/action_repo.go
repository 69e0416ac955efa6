package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ActionRepository writes and reads the append-only audit trail. There is
// deliberately no update or delete method.
type ActionRepository interface {
	Log(ctx context.Context, entry *model.Action) error
	FindByID(ctx context.Context, id uint) (*model.Action, error)
	List(ctx context.Context, page, limit int) ([]model.Action, int64, error)
}

type actionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepository{db: db}
}

func (r *actionRepository) Log(ctx context.Context, entry *model.Action) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *actionRepository) FindByID(ctx context.Context, id uint) (*model.Action, error) {
	var entry model.Action
	if err := GetDB(ctx, r.db).Preload("User").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *actionRepository) List(ctx context.Context, page, limit int) ([]model.Action, int64, error) {
	var entries []model.Action
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Action{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
