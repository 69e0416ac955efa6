package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// NewPictureInput is a freshly uploaded gallery file, already persisted by the
// media store.
type NewPictureInput struct {
	Path        string
	Description string
}

type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required"`
	Price        *decimal.Decimal `json:"price"`
	Description  string           `json:"description"`
	Comments     string           `json:"comments"`
	Availability *bool            `json:"availability"`
	Photo        string           `json:"-"` // media path, set by the handler from the upload
	UserID       *uint            `json:"user_id"`
	EntrepriseID *uint            `json:"entreprise_id"`
	PictureIDs   []uint           `json:"picture_ids"` // link existing gallery images
	NewPictures  []NewPictureInput `json:"-"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Description  string           `json:"description"`
	Comments     string           `json:"comments"`
	Availability *bool            `json:"availability"`
	Photo        string           `json:"-"`
	UserID       *uint            `json:"user_id"`
	EntrepriseID *uint            `json:"entreprise_id"`
	PictureIDs   []uint           `json:"picture_ids"`
	NewPictures  []NewPictureInput `json:"-"`
}

// ProductService is the catalog write path. Create/update/delete are audited
// in the same transaction as the product row; the delete audit uses a
// snapshot of the name taken before the row is removed.
type ProductService interface {
	Create(ctx context.Context, actorID *uint, req CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]model.Product, int64, error)
	Update(ctx context.Context, actorID *uint, id uint, req UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, actorID *uint, id uint) error
}

type productService struct {
	repo      repository.ProductRepository
	imageRepo repository.ProductImageRepository
	audit     *AuditRecorder
	txManager repository.TransactionManager
}

func NewProductService(
	repo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	audit *AuditRecorder,
	txManager repository.TransactionManager,
) ProductService {
	return &productService{repo: repo, imageRepo: imageRepo, audit: audit, txManager: txManager}
}

// resolvePictures turns picture IDs and fresh uploads into rows ready to link.
func (s *productService) resolvePictures(ctx context.Context, ids []uint, uploads []NewPictureInput) ([]model.ProductImage, error) {
	pictures, err := s.imageRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve picture ids: %w", err)
	}
	if len(pictures) != len(ids) {
		return nil, errors.New("one or more picture ids do not exist")
	}
	for _, up := range uploads {
		img := model.ProductImage{Image: up.Path, Description: up.Description}
		if err := s.imageRepo.Create(ctx, &img); err != nil {
			return nil, fmt.Errorf("failed to store gallery image: %w", err)
		}
		pictures = append(pictures, img)
	}
	return pictures, nil
}

func (s *productService) Create(ctx context.Context, actorID *uint, req CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		Name:         req.Name,
		Description:  req.Description,
		Comments:     req.Comments,
		Photo:        req.Photo,
		Availability: true,
		UserID:       req.UserID,
		EntrepriseID: req.EntrepriseID,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Availability != nil {
		product.Availability = *req.Availability
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		pictures, err := s.resolvePictures(txCtx, req.PictureIDs, req.NewPictures)
		if err != nil {
			return err
		}
		if err := s.repo.LinkPictures(txCtx, product, pictures); err != nil {
			return fmt.Errorf("failed to link pictures: %w", err)
		}

		// Mirror the ownership rule of the audit trail: the product's owner is
		// the actor when the request itself is anonymous.
		actor := actorID
		if actor == nil {
			actor = product.UserID
		}
		s.audit.Record(txCtx, actor, model.ActionCreate, "Product", product.DisplayName())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, product.ID)
}

func (s *productService) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.List(ctx, filter, page, limit)
}

func (s *productService) Update(ctx context.Context, actorID *uint, id uint, req UpdateProductRequest) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Comments != "" {
		product.Comments = req.Comments
	}
	if req.Availability != nil {
		product.Availability = *req.Availability
	}
	if req.Photo != "" {
		product.Photo = req.Photo
	}
	if req.UserID != nil {
		product.UserID = req.UserID
	}
	if req.EntrepriseID != nil {
		product.EntrepriseID = req.EntrepriseID
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		// Gallery changes only when the request mentions pictures.
		if req.PictureIDs != nil || len(req.NewPictures) > 0 {
			pictures, err := s.resolvePictures(txCtx, req.PictureIDs, req.NewPictures)
			if err != nil {
				return err
			}
			if err := s.repo.ReplacePictures(txCtx, product, pictures); err != nil {
				return fmt.Errorf("failed to update pictures: %w", err)
			}
		}

		actor := actorID
		if actor == nil {
			actor = product.UserID
		}
		s.audit.Record(txCtx, actor, model.ActionUpdate, "Product", product.DisplayName())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, product.ID)
}

func (s *productService) Delete(ctx context.Context, actorID *uint, id uint) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	// Snapshot the display name before the row is gone.
	repr := product.DisplayName()

	actor := actorID
	if actor == nil {
		actor = product.UserID
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		s.audit.Record(txCtx, actor, model.ActionDelete, "Product", repr)
		return nil
	})
}
