package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

var ErrRoleNotFound = errors.New("role not found")

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoleService interface {
	Create(ctx context.Context, req CreateRoleRequest) (*model.Role, error)
	GetByID(ctx context.Context, id uint) (*model.Role, error)
	List(ctx context.Context, page, limit int) ([]model.Role, int64, error)
	Update(ctx context.Context, id uint, req UpdateRoleRequest) (*model.Role, error)
	Delete(ctx context.Context, id uint) error
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) Create(ctx context.Context, req CreateRoleRequest) (*model.Role, error) {
	role := &model.Role{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) GetByID(ctx context.Context, id uint) (*model.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) List(ctx context.Context, page, limit int) ([]model.Role, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.List(ctx, page, limit)
}

func (s *roleService) Update(ctx context.Context, id uint, req UpdateRoleRequest) (*model.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
