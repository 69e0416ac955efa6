package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// DTOs for request validation
type CreateUserRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	WhatsappPhone string `json:"whatsapp_phone"`
	Website       string `json:"website"`
	Residence     string `json:"residence"`
	StructureName string `json:"structure_name"`
	Password      string `json:"password" binding:"required,min=6"`
	RoleID        *uint  `json:"role_id"`
	EntrepriseID  *uint  `json:"entreprise_id"`
	IsStaff       bool   `json:"is_staff"`
	IsSuperuser   bool   `json:"is_superuser"`
}

type UpdateUserRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	WhatsappPhone string `json:"whatsapp_phone"`
	Website       string `json:"website"`
	Residence     string `json:"residence"`
	StructureName string `json:"structure_name"`
	Password      string `json:"password" binding:"omitempty,min=6"`
	RoleID        *uint  `json:"role_id"`
	EntrepriseID  *uint  `json:"entreprise_id"`
	IsActive      *bool  `json:"is_active"`
	IsStaff       *bool  `json:"is_staff"`
	IsSuperuser   *bool  `json:"is_superuser"`
}

// UserService defines the business logic around accounts. Every mutation is
// audited: one Action row per create/update/delete, written in the same
// transaction as the user row.
type UserService interface {
	CreateUser(ctx context.Context, actorID *uint, req CreateUserRequest) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	ListByEntreprise(ctx context.Context, entrepriseID uint, page, limit int) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, actorID *uint, id uint, req UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, actorID *uint, id uint) error
}

type userService struct {
	repo      repository.UserRepository
	audit     *AuditRecorder
	txManager repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, audit *AuditRecorder, txManager repository.TransactionManager) UserService {
	return &userService{repo: repo, audit: audit, txManager: txManager}
}

func (s *userService) CreateUser(ctx context.Context, actorID *uint, req CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		WhatsappPhone: req.WhatsappPhone,
		Website:       req.Website,
		Residence:     req.Residence,
		StructureName: req.StructureName,
		Password:      string(hashedPassword),
		RoleID:        req.RoleID,
		EntrepriseID:  req.EntrepriseID,
		IsActive:      true,
		IsStaff:       req.IsStaff,
		IsSuperuser:   req.IsSuperuser,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		// When the caller is anonymous the created account is its own actor,
		// matching the self-registration flow.
		actor := actorID
		if actor == nil {
			actor = &user.ID
		}
		s.audit.Record(txCtx, actor, model.ActionCreate, "User", user.DisplayName())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListByEntreprise(ctx context.Context, entrepriseID uint, page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListByEntreprise(ctx, entrepriseID, page, limit)
}

func (s *userService) UpdateUser(ctx context.Context, actorID *uint, id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		}
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.WhatsappPhone != "" {
		user.WhatsappPhone = req.WhatsappPhone
	}
	if req.Website != "" {
		user.Website = req.Website
	}
	if req.Residence != "" {
		user.Residence = req.Residence
	}
	if req.StructureName != "" {
		user.StructureName = req.StructureName
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.New("failed to hash password")
		}
		user.Password = string(hashed)
	}
	if req.RoleID != nil {
		user.RoleID = req.RoleID
	}
	if req.EntrepriseID != nil {
		user.EntrepriseID = req.EntrepriseID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		s.audit.Record(txCtx, actorID, model.ActionUpdate, "User", user.DisplayName())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID *uint, id uint) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Snapshot before the row disappears.
	repr := user.DisplayName()

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		s.audit.Record(txCtx, actorID, model.ActionDelete, "User", repr)
		return nil
	})
}
