package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *model.ProductImage) error
	FindByID(ctx context.Context, id uint) (*model.ProductImage, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.ProductImage, error)
	List(ctx context.Context, page, limit int) ([]model.ProductImage, int64, error)
	Update(ctx context.Context, image *model.ProductImage) error
	Delete(ctx context.Context, id uint) error
}

type productImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	return &productImageRepository{db: db}
}

func (r *productImageRepository) Create(ctx context.Context, image *model.ProductImage) error {
	return GetDB(ctx, r.db).Create(image).Error
}

func (r *productImageRepository) FindByID(ctx context.Context, id uint) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := GetDB(ctx, r.db).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.ProductImage, error) {
	var images []model.ProductImage
	if len(ids) == 0 {
		return images, nil
	}
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productImageRepository) List(ctx context.Context, page, limit int) ([]model.ProductImage, int64, error) {
	var images []model.ProductImage
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ProductImage{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("id").Offset(offset).Limit(limit).Find(&images).Error; err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

func (r *productImageRepository) Update(ctx context.Context, image *model.ProductImage) error {
	return GetDB(ctx, r.db).Save(image).Error
}

func (r *productImageRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ProductImage{}).Error
}
