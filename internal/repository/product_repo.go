package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ProductFilter narrows product listings by owner. Nil fields are ignored.
type ProductFilter struct {
	UserID       *uint
	EntrepriseID *uint
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter, page, limit int) ([]model.Product, int64, error)
	LinkPictures(ctx context.Context, product *model.Product, pictures []model.ProductImage) error
	ReplacePictures(ctx context.Context, product *model.Product, pictures []model.ProductImage) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	// Omit the association so gallery membership only changes through the
	// explicit picture methods below.
	return GetDB(ctx, r.db).Omit("Pictures").Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Preload("Pictures").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{})
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
	if err := db.Preload("Pictures").Order("id desc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// LinkPictures attaches gallery images to a product, creating rows for any
// image without an ID.
func (r *productRepository) LinkPictures(ctx context.Context, product *model.Product, pictures []model.ProductImage) error {
	if len(pictures) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(product).Association("Pictures").Append(&pictures)
}

// ReplacePictures swaps the product's gallery for the given set.
func (r *productRepository) ReplacePictures(ctx context.Context, product *model.Product, pictures []model.ProductImage) error {
	return GetDB(ctx, r.db).Model(product).Association("Pictures").Replace(&pictures)
}
