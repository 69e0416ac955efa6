package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

var ErrActionNotFound = errors.New("action not found")

// ActionService reads the audit trail. There are no mutating methods: Action
// rows are written exclusively by the AuditRecorder and never change.
type ActionService interface {
	GetByID(ctx context.Context, id uint) (*model.Action, error)
	List(ctx context.Context, page, limit int) ([]model.Action, int64, error)
}

type actionService struct {
	repo repository.ActionRepository
}

func NewActionService(repo repository.ActionRepository) ActionService {
	return &actionService{repo: repo}
}

func (s *actionService) GetByID(ctx context.Context, id uint) (*model.Action, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *actionService) List(ctx context.Context, page, limit int) ([]model.Action, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.List(ctx, page, limit)
}
