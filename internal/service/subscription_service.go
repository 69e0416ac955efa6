package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type CreateSubscriptionRequest struct {
	UserID       uint       `json:"user_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	EntrepriseID *uint      `json:"entreprise_id"`
}

type UpdateSubscriptionRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	EntrepriseID *uint      `json:"entreprise_id"`
}

// SubscriptionService manages access windows. Status is never accepted from
// callers: the model's BeforeSave hook recomputes it on every write, so even
// an unrelated field update re-evaluates expiry.
type SubscriptionService interface {
	Create(ctx context.Context, req CreateSubscriptionRequest) (*model.Subscription, error)
	GetByID(ctx context.Context, id uint) (*model.Subscription, error)
	List(ctx context.Context, filter repository.SubscriptionFilter, page, limit int) ([]model.Subscription, int64, error)
	Update(ctx context.Context, id uint, req UpdateSubscriptionRequest) (*model.Subscription, error)
	Delete(ctx context.Context, id uint) error
}

type subscriptionService struct {
	repo repository.SubscriptionRepository
}

func NewSubscriptionService(repo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{repo: repo}
}

func (s *subscriptionService) Create(ctx context.Context, req CreateSubscriptionRequest) (*model.Subscription, error) {
	sub := &model.Subscription{
		UserID:       req.UserID,
		Name:         req.Name,
		Description:  req.Description,
		EntrepriseID: req.EntrepriseID,
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		sub.EndDate = *req.EndDate
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) GetByID(ctx context.Context, id uint) (*model.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) List(ctx context.Context, filter repository.SubscriptionFilter, page, limit int) ([]model.Subscription, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.List(ctx, filter, page, limit)
}

func (s *subscriptionService) Update(ctx context.Context, id uint, req UpdateSubscriptionRequest) (*model.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		sub.Name = req.Name
	}
	if req.Description != "" {
		sub.Description = req.Description
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		sub.EndDate = *req.EndDate
	}
	if req.EntrepriseID != nil {
		sub.EntrepriseID = req.EntrepriseID
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
