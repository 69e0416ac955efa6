package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

var ErrProductImageNotFound = errors.New("product image not found")

type ProductImageService interface {
	Create(ctx context.Context, path, description string) (*model.ProductImage, error)
	GetByID(ctx context.Context, id uint) (*model.ProductImage, error)
	List(ctx context.Context, page, limit int) ([]model.ProductImage, int64, error)
	UpdateDescription(ctx context.Context, id uint, description string) (*model.ProductImage, error)
	Delete(ctx context.Context, id uint) error
}

type productImageService struct {
	repo repository.ProductImageRepository
}

func NewProductImageService(repo repository.ProductImageRepository) ProductImageService {
	return &productImageService{repo: repo}
}

func (s *productImageService) Create(ctx context.Context, path, description string) (*model.ProductImage, error) {
	if path == "" {
		return nil, errors.New("image file is required")
	}
	image := &model.ProductImage{Image: path, Description: description}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *productImageService) GetByID(ctx context.Context, id uint) (*model.ProductImage, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductImageNotFound
		}
		return nil, err
	}
	return image, nil
}

func (s *productImageService) List(ctx context.Context, page, limit int) ([]model.ProductImage, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.List(ctx, page, limit)
}

func (s *productImageService) UpdateDescription(ctx context.Context, id uint, description string) (*model.ProductImage, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductImageNotFound
		}
		return nil, err
	}
	image.Description = description
	if err := s.repo.Update(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *productImageService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductImageNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
