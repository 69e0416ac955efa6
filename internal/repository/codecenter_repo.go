package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CodeCenterRepository interface {
	Create(ctx context.Context, center *model.CodeCenter) error
	FindByID(ctx context.Context, id uint) (*model.CodeCenter, error)
	List(ctx context.Context, page, limit int) ([]model.CodeCenter, int64, error)
	Update(ctx context.Context, center *model.CodeCenter) error
	Delete(ctx context.Context, id uint) error
	FindLastForUpdate(ctx context.Context) (*model.CodeCenter, error)
}

type codeCenterRepository struct {
	db *gorm.DB
}

func NewCodeCenterRepository(db *gorm.DB) CodeCenterRepository {
	return &codeCenterRepository{db: db}
}

func (r *codeCenterRepository) Create(ctx context.Context, center *model.CodeCenter) error {
	return GetDB(ctx, r.db).Create(center).Error
}

func (r *codeCenterRepository) FindByID(ctx context.Context, id uint) (*model.CodeCenter, error) {
	var center model.CodeCenter
	if err := GetDB(ctx, r.db).First(&center, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *codeCenterRepository) List(ctx context.Context, page, limit int) ([]model.CodeCenter, int64, error) {
	var centers []model.CodeCenter
	var total int64

	db := GetDB(ctx, r.db).Model(&model.CodeCenter{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("id desc").Offset(offset).Limit(limit).Find(&centers).Error; err != nil {
		return nil, 0, err
	}

	return centers, total, nil
}

func (r *codeCenterRepository) Update(ctx context.Context, center *model.CodeCenter) error {
	return GetDB(ctx, r.db).Save(center).Error
}

func (r *codeCenterRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CodeCenter{}).Error
}

// FindLastForUpdate returns the newest row with a FOR UPDATE lock, serializing
// concurrent code generation. A nil result with nil error means the table is
// empty.
func (r *codeCenterRepository) FindLastForUpdate(ctx context.Context) (*model.CodeCenter, error) {
	var center model.CodeCenter
	err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id desc").First(&center).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &center, nil
}
