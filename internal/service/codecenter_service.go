package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

// DTOs
type CreateCodeCenterRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCodeCenterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CodeCenterService interface {
	Create(ctx context.Context, req CreateCodeCenterRequest) (*model.CodeCenter, error)
	GetByID(ctx context.Context, id uint) (*model.CodeCenter, error)
	List(ctx context.Context, page, limit int) ([]model.CodeCenter, int64, error)
	Update(ctx context.Context, id uint, req UpdateCodeCenterRequest) (*model.CodeCenter, error)
	Delete(ctx context.Context, id uint) error
}

type codeCenterService struct {
	repo      repository.CodeCenterRepository
	txManager repository.TransactionManager
}

func NewCodeCenterService(repo repository.CodeCenterRepository, txManager repository.TransactionManager) CodeCenterService {
	return &codeCenterService{repo: repo, txManager: txManager}
}

// codeCreateAttempts bounds the duplicate-key retry loop. The row lock in
// FindLastForUpdate already serializes writers on one database; the retry
// covers the first-ever insert, where there is no row to lock.
const codeCreateAttempts = 3

// nextCode derives the successor of the newest code. The numeric suffix of
// the previous code is incremented and zero-padded; an unparseable suffix or
// an empty table restarts numbering at 1.
func nextCode(last *model.CodeCenter) string {
	n := 1
	if last != nil && len(last.Code) > len(model.CodeCenterPrefix) {
		if parsed, err := strconv.Atoi(last.Code[len(model.CodeCenterPrefix):]); err == nil {
			n = parsed + 1
		}
	}
	return fmt.Sprintf("%s%03d", model.CodeCenterPrefix, n)
}

func (s *codeCenterService) Create(ctx context.Context, req CreateCodeCenterRequest) (*model.CodeCenter, error) {
	center := &model.CodeCenter{
		Name:        req.Name,
		Description: req.Description,
	}

	var lastErr error
	for attempt := 0; attempt < codeCreateAttempts; attempt++ {
		lastErr = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			last, err := s.repo.FindLastForUpdate(txCtx)
			if err != nil {
				return fmt.Errorf("scan last code: %w", err)
			}
			center.Code = nextCode(last)
			return s.repo.Create(txCtx, center)
		})
		if lastErr == nil {
			return center, nil
		}
		// A concurrent first insert can still collide on the unique code
		// index; regenerate and try again.
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			return nil, lastErr
		}
		center.ID = 0
	}
	return nil, lastErr
}

func (s *codeCenterService) GetByID(ctx context.Context, id uint) (*model.CodeCenter, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *codeCenterService) List(ctx context.Context, page, limit int) ([]model.CodeCenter, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *codeCenterService) Update(ctx context.Context, id uint, req UpdateCodeCenterRequest) (*model.CodeCenter, error) {
	center, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Code is assigned once at creation and never rewritten.
	if req.Name != "" {
		center.Name = req.Name
	}
	if req.Description != "" {
		center.Description = req.Description
	}

	if err := s.repo.Update(ctx, center); err != nil {
		return nil, err
	}
	return center, nil
}

func (s *codeCenterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
