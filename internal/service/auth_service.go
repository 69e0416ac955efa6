package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetimes: short-lived access, week-long refresh.
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Auth error taxonomy. Handlers map ErrUnknownEmail to 400 and
// ErrInvalidCredentials to 401, matching the original login contract.
var (
	ErrUnknownEmail       = errors.New("no user with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("token is invalid or already blacklisted")
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Access             string
	Refresh            string
	User               *model.User
	TimeSinceLastLogin time.Duration
}

// TokenPair is a fresh access+refresh pair issued on refresh rotation.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService is the credential gateway: login, logout (refresh blacklist)
// and refresh rotation.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	secret []byte
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, secret []byte) AuthService {
	return &authService{users: users, tokens: tokens, secret: secret, now: time.Now}
}

// issueTokens mints a signed access/refresh pair and persists the refresh
// token's jti so logout can blacklist it later.
func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	now := s.now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"staff": user.IsStaff,
		"iat":   now.Unix(),
		"exp":   now.Add(AccessTokenTTL).Unix(),
	})
	accessString, err := access.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	jti := uuid.New()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"jti": jti.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	})
	refreshString, err := refresh.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	record := &model.RefreshToken{
		ID:        jti,
		UserID:    user.ID,
		ExpiresAt: now.Add(RefreshTokenTTL),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPair{Access: accessString, Refresh: refreshString}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrUnknownEmail
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	// Elapsed time since the previous login; first login measures from the
	// account's creation.
	now := s.now()
	previous := user.CreatedAt
	if user.LastLogin != nil {
		previous = *user.LastLogin
	}
	elapsed := now.Sub(previous)

	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return &LoginResult{
		Access:             pair.Access,
		Refresh:            pair.Refresh,
		User:               user,
		TimeSinceLastLogin: elapsed,
	}, nil
}

// verifyRefresh parses the token string and resolves its stored row. The row
// must exist, be unexpired and not yet revoked.
func (s *authService) verifyRefresh(ctx context.Context, refreshToken string) (*model.RefreshToken, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, ErrInvalidToken
	}
	jtiString, _ := claims["jti"].(string)
	jti, err := uuid.Parse(jtiString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	record, err := s.tokens.FindByID(ctx, jti)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if record.Revoked || s.now().After(record.ExpiresAt) {
		return nil, ErrInvalidToken
	}
	return record, nil
}

// Logout blacklists the refresh token so it cannot be redeemed again.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	record, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	return s.tokens.Revoke(ctx, record.ID)
}

// Refresh rotates the pair: the presented token is revoked and a fresh pair
// issued for the same user.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	record, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	if err := s.tokens.Revoke(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}
